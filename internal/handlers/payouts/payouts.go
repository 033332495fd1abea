package payouts

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/dto"
	"github.com/GlebRadaev/remittance/internal/handlers/httperr"
	"github.com/GlebRadaev/remittance/pkg/utils"
	"github.com/GlebRadaev/remittance/pkg/validate"
	"github.com/google/uuid"
)

//go:generate mockgen -source=payouts.go -destination=mock_payouts.go -package=payouts

type Service interface {
	HandleNotification(ctx context.Context, reference uuid.UUID) (*domain.Order, error)
}

type PayoutHandler struct {
	payoutService Service
}

func New(payoutService Service) *PayoutHandler {
	return &PayoutHandler{
		payoutService: payoutService,
	}
}

// Notify godoc
//
//	@Summary		Payout provider notification
//	@Description	The provider signals a status change; the status is re-read from the provider before it is stored.
//	@Tags			Payouts
//	@Accept			json
//	@Produce		json
//	@Param			notification	body	dto.PayoutNotifyRequestDTO	true	"Order reference"
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid reference"
//	@Failure		404	{object}	utils.Response	"Unknown reference"
//	@Failure		409	{object}	utils.Response	"Order has no payout"
//	@Router			/api/payouts/notify [post]
func (h *PayoutHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var req dto.PayoutNotifyRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	reference, err := uuid.Parse(req.Reference)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid reference")
		return
	}

	order, err := h.payoutService.HandleNotification(r.Context(), reference)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(order))
}
