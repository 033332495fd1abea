package rates

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/dto"
	"github.com/GlebRadaev/remittance/internal/handlers/httperr"
	"github.com/GlebRadaev/remittance/pkg/utils"
)

//go:generate mockgen -source=rates.go -destination=mock_rates.go -package=rates

type Service interface {
	FindPair(ctx context.Context, pairID int) (*domain.CurrencyPair, error)
	Resolve(ctx context.Context, pair *domain.CurrencyPair, tier domain.Tier) (domain.RateResolution, error)
}

type RateHandler struct {
	rateService Service
}

func New(rateService Service) *RateHandler {
	return &RateHandler{
		rateService: rateService,
	}
}

// GetRate godoc
//
//	@Summary		Resolve the current rate of a pair
//	@Description	Returns the bid offered to the tier. base_rate is null for fixed-rate pairs.
//	@Tags			Rates
//	@Produce		json
//	@Param			id		path	int		true	"Pair ID"
//	@Param			tier	query	string	false	"personal, corps or imports"	default(personal)
//	@Security		BearerAuth
//	@Success		200	{object}	dto.RateResponseDTO
//	@Failure		400	{object}	utils.Response	"Unknown tier"
//	@Failure		404	{object}	utils.Response	"Pair not found"
//	@Failure		422	{object}	utils.Response	"No rate source configured"
//	@Failure		502	{object}	utils.Response	"Rate source returned no result"
//	@Router			/api/pairs/{id}/rate [get]
func (h *RateHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	pairID, err := utils.IntParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	tier := domain.Tier(r.URL.Query().Get("tier"))
	if tier == "" {
		tier = domain.TierPersonal
	}

	pair, err := h.rateService.FindPair(r.Context(), pairID)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	res, err := h.rateService.Resolve(r.Context(), pair, tier)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.RateResponseDTO{
		PairID:   pair.ID,
		Symbol:   pair.Symbol(),
		Tier:     string(tier),
		BaseRate: res.BaseRate,
		Bid:      res.Bid,
		QuotedAt: res.QuotedAt,
	})
}
