// Package httperr maps service errors to HTTP responses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/pkg/utils"
	"go.uber.org/zap"
)

func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotAllowed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateRejected), errors.Is(err, domain.ErrNoSourceConfigured):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNoResult), errors.Is(err, domain.ErrPayoutRefused):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Write responds with the status for err. Internal errors are logged and their
// text is not exposed.
func Write(w http.ResponseWriter, err error) {
	code := Status(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, code, "Internal server error")
		return
	}
	utils.RespondWithError(w, code, err.Error())
}
