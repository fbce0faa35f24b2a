package utils

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== BOOKING NUMBER ====================

// GenerateBookingNumber returns a random 6-digit code shown on a ticket.
// It is for display only and not guaranteed to be unique.
func GenerateBookingNumber() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
