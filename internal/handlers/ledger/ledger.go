package ledger

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/dto"
	"github.com/GlebRadaev/remittance/internal/handlers/httperr"
	"github.com/GlebRadaev/remittance/internal/service/ledgerservice"
	"github.com/GlebRadaev/remittance/pkg/utils"
)

//go:generate mockgen -source=ledger.go -destination=mock_ledger.go -package=ledger

type Service interface {
	RecordIncome(ctx context.Context, in ledgerservice.IncomeInput) (*domain.Transaction, error)
	ReverseIncome(ctx context.Context, transactionID int) (*domain.Transaction, error)
	GetBalance(ctx context.Context, userID int) (*domain.User, error)
	BalanceEntries(ctx context.Context, userID int) ([]domain.BalanceEntry, error)
	Transactions(ctx context.Context, userID int) ([]domain.Transaction, error)
}

type LedgerHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// RecordIncome godoc
//
//	@Summary		Record an income
//	@Description	Books funds received on a company account and credits the user balance.
//	@Tags			Ledger
//	@Accept			json
//	@Produce		json
//	@Param			income	body	dto.IncomeRequestDTO	true	"Income"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.TransactionResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request or duplicate external id"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/ledger/incomes [post]
func (h *LedgerHandler) RecordIncome(w http.ResponseWriter, r *http.Request) {
	var req dto.IncomeRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.ledgerService.RecordIncome(r.Context(), ledgerservice.IncomeInput{
		UserID:     req.UserID,
		AccountID:  req.AccountID,
		ExternalID: req.ExternalID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Note:       req.Note,
		Date:       req.Date,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewTransactionResponse(tx))
}

// ReverseIncome godoc
//
//	@Summary		Reverse an income
//	@Description	Rejects the income transaction and debits the credited amount.
//	@Tags			Ledger
//	@Produce		json
//	@Param			id	path	int	true	"Transaction ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.TransactionResponseDTO
//	@Failure		404	{object}	utils.Response	"Transaction not found"
//	@Failure		409	{object}	utils.Response	"Already reversed"
//	@Router			/api/ledger/transactions/{id}/reverse [post]
func (h *LedgerHandler) ReverseIncome(w http.ResponseWriter, r *http.Request) {
	txID, err := utils.IntParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.ledgerService.ReverseIncome(r.Context(), txID)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransactionResponse(tx))
}

// GetBalance godoc
//
//	@Summary		Get user balance
//	@Tags			Ledger
//	@Produce		json
//	@Param			id	path	int	true	"User ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Router			/api/users/{id}/balance [get]
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.IntParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.ledgerService.GetBalance(r.Context(), userID)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{UserID: user.ID, Balance: user.Balance})
}

// GetBalanceEntries godoc
//
//	@Summary		List balance mutations of a user
//	@Tags			Ledger
//	@Produce		json
//	@Param			id	path	int	true	"User ID"
//	@Security		BearerAuth
//	@Success		200	{array}	dto.BalanceEntryDTO
//	@Router			/api/users/{id}/balance/entries [get]
func (h *LedgerHandler) GetBalanceEntries(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.IntParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.ledgerService.BalanceEntries(r.Context(), userID)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewBalanceEntries(entries))
}

// GetTransactions godoc
//
//	@Summary		List ledger transactions of a user
//	@Tags			Ledger
//	@Produce		json
//	@Param			id	path	int	true	"User ID"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.TransactionResponseDTO
//	@Success		204	{object}	utils.Response	"No data available"
//	@Router			/api/users/{id}/transactions [get]
func (h *LedgerHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.IntParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := h.ledgerService.Transactions(r.Context(), userID)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	if len(txs) == 0 {
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
		return
	}

	response := make([]dto.TransactionResponseDTO, 0, len(txs))
	for i := range txs {
		response = append(response, dto.NewTransactionResponse(&txs[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
