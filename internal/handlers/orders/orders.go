package orders

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/dto"
	"github.com/GlebRadaev/remittance/internal/handlers/httperr"
	"github.com/GlebRadaev/remittance/internal/service/orderservice"
	"github.com/GlebRadaev/remittance/pkg/auth"
	"github.com/GlebRadaev/remittance/pkg/utils"
	"github.com/GlebRadaev/remittance/pkg/validate"
	"go.uber.org/zap"
)

//go:generate mockgen -source=orders.go -destination=mock_orders.go -package=orders

type Service interface {
	Create(ctx context.Context, in orderservice.CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, orderID int) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Order, error)
	Fill(ctx context.Context, orderID int, externalRef string) (*domain.Order, error)
	PayWithBalance(ctx context.Context, orderID int) (*domain.Order, error)
	VerifyPayment(ctx context.Context, orderID int) (*domain.Order, error)
	RejectPayment(ctx context.Context, orderID int, reason string) (*domain.Order, error)
	VerifyOrder(ctx context.Context, orderID int) (*domain.Order, error)
	RejectOrder(ctx context.Context, orderID int, reason string) (*domain.Order, error)
	ApproveCompliance(ctx context.Context, orderID int) (*domain.Order, error)
	StartPayout(ctx context.Context, orderID int) (*domain.Order, error)
	Complete(ctx context.Context, orderID int) (*domain.Order, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder godoc
//
//	@Summary		Create an order
//	@Description	Prices a new remittance order at the rate the customer accepted.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body	dto.CreateOrderRequestDTO	true	"Order to create"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.OrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request"
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		404	{object}	utils.Response	"Unknown pair or priority"
//	@Failure		422	{object}	utils.Response	"Rate outside the accepted range"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderService.Create(r.Context(), orderservice.CreateOrderInput{
		UserID:        req.UserID,
		RecipientID:   req.RecipientID,
		RemitterID:    req.RemitterID,
		PairID:        req.PairID,
		PriorityID:    req.PriorityID,
		Tier:          domain.Tier(req.Tier),
		PaymentAmount: req.PaymentAmount,
		Rate:          req.Rate,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewOrderResponse(order))
}

// GetOrder godoc
//
//	@Summary		Get an order
//	@Description	Returns the order with its derived status.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path	int	true	"Order ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid order id"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.IntParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderService.Get(r.Context(), orderID)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(order))
}

// GetUserOrders godoc
//
//	@Summary		List orders of a user
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path	int	true	"User ID"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Success		204	{object}	utils.Response	"No data available"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/users/{id}/orders [get]
func (h *OrderHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.IntParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.orderService.ListByUser(r.Context(), userID)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	if len(orders) == 0 {
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
		return
	}

	response := make([]dto.OrderResponseDTO, 0, len(orders))
	for i := range orders {
		response = append(response, dto.NewOrderResponse(&orders[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Fill godoc
//
//	@Summary		Attach a bank transfer payment
//	@Tags			Order transitions
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int					true	"Order ID"
//	@Param			payment	body	dto.FillRequestDTO	true	"Transfer reference"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Not allowed in current state"
//	@Router			/api/orders/{id}/fill [post]
func (h *OrderHandler) Fill(w http.ResponseWriter, r *http.Request) {
	var req dto.FillRequestDTO
	if !decodeValid(w, r, &req) {
		return
	}
	h.transition(w, r, "fill", func(ctx context.Context, id int) (*domain.Order, error) {
		return h.orderService.Fill(ctx, id, req.ExternalRef)
	})
}

// PayWithBalance godoc
//
//	@Summary		Pay the order from the user balance
//	@Tags			Order transitions
//	@Produce		json
//	@Param			id	path	int	true	"Order ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Not allowed in current state"
//	@Router			/api/orders/{id}/pay-with-balance [post]
func (h *OrderHandler) PayWithBalance(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "pay_with_balance", h.orderService.PayWithBalance)
}

// VerifyPayment godoc
//
//	@Summary		Verify the order payment
//	@Tags			Order transitions
//	@Produce		json
//	@Param			id	path	int	true	"Order ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		409	{object}	utils.Response	"Not allowed in current state"
//	@Router			/api/orders/{id}/payment/verify [post]
func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "verify_payment", h.orderService.VerifyPayment)
}

// RejectPayment godoc
//
//	@Summary		Reject the order payment
//	@Description	Rejects the payment and the order. A filled order is refunded.
//	@Tags			Order transitions
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int						true	"Order ID"
//	@Param			reason	body	dto.ReasonRequestDTO	true	"Rejection reason"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		409	{object}	utils.Response	"Not allowed in current state"
//	@Router			/api/orders/{id}/payment/reject [post]
func (h *OrderHandler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.ReasonRequestDTO
	if !decodeValid(w, r, &req) {
		return
	}
	h.transition(w, r, "reject_payment", func(ctx context.Context, id int) (*domain.Order, error) {
		return h.orderService.RejectPayment(ctx, id, req.Reason)
	})
}

// VerifyOrder godoc
//
//	@Summary		Verify the order
//	@Tags			Order transitions
//	@Produce		json
//	@Param			id	path	int	true	"Order ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		409	{object}	utils.Response	"Not allowed in current state"
//	@Router			/api/orders/{id}/verify [post]
func (h *OrderHandler) VerifyOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "verify_order", h.orderService.VerifyOrder)
}

// RejectOrder godoc
//
//	@Summary		Reject the order
//	@Tags			Order transitions
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int						true	"Order ID"
//	@Param			reason	body	dto.ReasonRequestDTO	true	"Rejection reason"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		409	{object}	utils.Response	"Not allowed in current state"
//	@Router			/api/orders/{id}/reject [post]
func (h *OrderHandler) RejectOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.ReasonRequestDTO
	if !decodeValid(w, r, &req) {
		return
	}
	h.transition(w, r, "reject_order", func(ctx context.Context, id int) (*domain.Order, error) {
		return h.orderService.RejectOrder(ctx, id, req.Reason)
	})
}

// ApproveCompliance godoc
//
//	@Summary		Record compliance approval
//	@Tags			Order transitions
//	@Produce		json
//	@Param			id	path	int	true	"Order ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		409	{object}	utils.Response	"Not allowed in current state"
//	@Router			/api/orders/{id}/compliance [post]
func (h *OrderHandler) ApproveCompliance(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "approve_compliance", h.orderService.ApproveCompliance)
}

// StartPayout godoc
//
//	@Summary		Hand the order to the payout provider
//	@Tags			Order transitions
//	@Produce		json
//	@Param			id	path	int	true	"Order ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		409	{object}	utils.Response	"Not allowed in current state"
//	@Failure		422	{object}	utils.Response	"No USD rate for the payout currency"
//	@Router			/api/orders/{id}/payout [post]
func (h *OrderHandler) StartPayout(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "start_payout", h.orderService.StartPayout)
}

// Complete godoc
//
//	@Summary		Complete the order
//	@Tags			Order transitions
//	@Produce		json
//	@Param			id	path	int	true	"Order ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		409	{object}	utils.Response	"Not allowed in current state"
//	@Router			/api/orders/{id}/complete [post]
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "complete", h.orderService.Complete)
}

func (h *OrderHandler) transition(w http.ResponseWriter, r *http.Request, name string, fn func(context.Context, int) (*domain.Order, error)) {
	orderID, err := utils.IntParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	operatorID, _ := auth.OperatorID(r.Context())
	zap.L().Info("order transition requested",
		zap.String("transition", name), zap.Int("orderID", orderID), zap.Int("operatorID", operatorID))

	order, err := fn(r.Context(), orderID)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(order))
}

func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.DecodeJSON(r, dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
