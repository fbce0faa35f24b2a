package adaptor

import (
	"encoding/json"
	"net/http"

	"cinemate/internal/dto/request"
	"cinemate/internal/usecase"
	"cinemate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// StartSession handles POST /api/bookings/sessions
func (h *BookingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req request.StartBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	session, err := h.service.StartSession(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "start booking session")
		return
	}

	utils.ResponseCreated(w, "success", session)
}

// GetSession handles GET /api/bookings/sessions/{id}
func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// ToggleSeat handles POST /api/bookings/sessions/{id}/seats/{seatId}/toggle
func (h *BookingHandler) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.ToggleSeat(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "seatId"))
	if err != nil {
		handleServiceError(w, h.log, err, "toggle seat")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// Purchase handles POST /api/bookings/sessions/{id}/purchase (optional auth)
func (h *BookingHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Purchase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "purchase")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// NextEvent handles GET /api/bookings/sessions/{id}/events
func (h *BookingHandler) NextEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.NextEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "poll booking event")
		return
	}
	if event == nil {
		utils.ResponseNoContent(w)
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// CloseSession handles DELETE /api/bookings/sessions/{id}
func (h *BookingHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CloseSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "close booking session")
		return
	}

	utils.ResponseNoContent(w)
}
