package adaptor

import (
	"errors"
	"net/http"

	"cinemate/internal/booking"
	"cinemate/internal/usecase"
	"cinemate/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto response envelopes.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, booking.ErrInvalidSeatID):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, usecase.ErrAccountInactive):
		log.Warn(operation+" failed - account deactivated", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrTicketNotFound),
		errors.Is(err, usecase.ErrMovieNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrUsernameTaken),
		errors.Is(err, booking.ErrSessionClosed),
		errors.Is(err, booking.ErrSessionCommitted),
		errors.Is(err, booking.ErrPurchaseInFlight),
		errors.Is(err, booking.ErrIdentityPending):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, booking.ErrMetadataFetch),
		errors.Is(err, booking.ErrIdentityUnavailable):
		log.Error(operation+" failed - upstream", zap.Error(err))
		utils.ResponseBadGateway(w, booking.PublicMessage(err))

	case errors.Is(err, usecase.ErrCatalogUnavailable):
		log.Error(operation+" failed - upstream", zap.Error(err))
		utils.ResponseBadGateway(w, usecase.ErrCatalogUnavailable.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
