package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	TMDB     TMDBConfig
	Booking  BookingConfig
	Session  SessionConfig
	Showtime ShowtimeConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	MetadataTTL time.Duration
}

type TMDBConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Region       string
	Timeout      time.Duration
}

type BookingConfig struct {
	MaxSeats      int
	SeatPrice     decimal.Decimal
	Currency      string
	Rows          int
	SeatsPerRow   int
	ReservedRatio float64
	Location      string
}

type ShowtimeConfig struct {
	FromSchedules bool
	Days          int
}

type SessionConfig struct {
	ExpiryHours        int
	BookingIdleTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "cinemate")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_METADATA_TTL", "1h")
	v.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3/")
	v.SetDefault("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/w500")
	v.SetDefault("TMDB_REGION", "DE")
	v.SetDefault("TMDB_TIMEOUT", "10s")
	v.SetDefault("BOOKING_MAX_SEATS", 10)
	v.SetDefault("BOOKING_SEAT_PRICE", "12.00")
	v.SetDefault("BOOKING_CURRENCY", "EUR")
	v.SetDefault("BOOKING_ROWS", 8)
	v.SetDefault("BOOKING_SEATS_PER_ROW", 10)
	v.SetDefault("BOOKING_RESERVED_RATIO", 0.25)
	v.SetDefault("BOOKING_LOCATION", "Deggendorf")
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("BOOKING_IDLE_TIMEOUT", "30m")
	v.SetDefault("SHOWTIMES_FROM_SCHEDULES", false)
	v.SetDefault("SHOWTIMES_DAYS", 7)

	// .env is optional, the environment always wins
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()

	seatPrice, err := decimal.NewFromString(v.GetString("BOOKING_SEAT_PRICE"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_SEAT_PRICE: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:        v.GetString("REDIS_ADDR"),
			Password:    v.GetString("REDIS_PASSWORD"),
			DB:          v.GetInt("REDIS_DB"),
			MetadataTTL: v.GetDuration("REDIS_METADATA_TTL"),
		},
		TMDB: TMDBConfig{
			APIKey:       v.GetString("TMDB_API_KEY"),
			BaseURL:      v.GetString("TMDB_BASE_URL"),
			ImageBaseURL: v.GetString("TMDB_IMAGE_BASE_URL"),
			Region:       v.GetString("TMDB_REGION"),
			Timeout:      v.GetDuration("TMDB_TIMEOUT"),
		},
		Booking: BookingConfig{
			MaxSeats:      v.GetInt("BOOKING_MAX_SEATS"),
			SeatPrice:     seatPrice,
			Currency:      v.GetString("BOOKING_CURRENCY"),
			Rows:          v.GetInt("BOOKING_ROWS"),
			SeatsPerRow:   v.GetInt("BOOKING_SEATS_PER_ROW"),
			ReservedRatio: v.GetFloat64("BOOKING_RESERVED_RATIO"),
			Location:      v.GetString("BOOKING_LOCATION"),
		},
		Session: SessionConfig{
			ExpiryHours:        v.GetInt("SESSION_EXPIRY_HOURS"),
			BookingIdleTimeout: v.GetDuration("BOOKING_IDLE_TIMEOUT"),
		},
		Showtime: ShowtimeConfig{
			FromSchedules: v.GetBool("SHOWTIMES_FROM_SCHEDULES"),
			Days:          v.GetInt("SHOWTIMES_DAYS"),
		},
	}

	if err := config.Booking.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the booking policy values.
func (b BookingConfig) Validate() error {
	switch {
	case b.Rows < 1 || b.Rows > 26:
		return fmt.Errorf("BOOKING_ROWS must be between 1 and 26, got %d", b.Rows)
	case b.SeatsPerRow < 1:
		return fmt.Errorf("BOOKING_SEATS_PER_ROW must be positive, got %d", b.SeatsPerRow)
	case b.MaxSeats < 1:
		return fmt.Errorf("BOOKING_MAX_SEATS must be positive, got %d", b.MaxSeats)
	case !b.SeatPrice.IsPositive():
		return fmt.Errorf("BOOKING_SEAT_PRICE must be positive, got %s", b.SeatPrice)
	case b.ReservedRatio < 0 || b.ReservedRatio > 1:
		return fmt.Errorf("BOOKING_RESERVED_RATIO must be within [0, 1], got %v", b.ReservedRatio)
	}
	return nil
}
