package orderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/pg"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const orderColumns = `id, reference, user_id, recipient_id, remitter_id, pair_id, priority_id, tier,
		payment_amount, transaction_cost, priority_cost, tax_cost, total_cost, net_amount,
		rate, received_amount,
		filled_at, verified_at, rejected_at, expired_at, completed_at, paid_out_at, compliance_approved_at,
		payout_status, payout_status_code, reject_reason, created_at`

const paymentColumns = `id, order_id, kind, amount, external_ref, verified_at, rejected_at, reject_reason, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (reference, user_id, recipient_id, remitter_id, pair_id, priority_id, tier,
			payment_amount, transaction_cost, priority_cost, tax_cost, total_cost, net_amount,
			rate, received_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		order.Reference, order.UserID, order.RecipientID, order.RemitterID, order.PairID, order.PriorityID, order.Tier,
		order.PaymentAmount, order.TransactionCost, order.PriorityCost, order.TaxCost, order.TotalCost, order.NetAmount,
		order.Rate, order.ReceivedAmount, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		zap.L().Error("can't save order", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, orderID int) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`
	return r.findOne(ctx, query, orderID)
}

func (r *Repository) FindByReference(ctx context.Context, reference uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE reference = $1
	`
	return r.findOne(ctx, query, reference)
}

// FindForUpdate locks the order row and its payment until the enclosing
// transaction ends.
func (r *Repository) FindForUpdate(ctx context.Context, orderID int) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`
	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil || order == nil {
		return order, err
	}

	paymentQuery := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE order_id = $1
		FOR UPDATE
	`
	order.Payment, err = scanPayment(r.db.QueryRow(ctx, paymentQuery, order.ID))
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.findMany(ctx, query, userID)
}

// FindExpirable returns ids of orders created before the cutoff that never got
// a payment and are neither expired nor rejected.
func (r *Repository) FindExpirable(ctx context.Context, createdBefore time.Time, limit uint32) ([]int, error) {
	query := `
		SELECT o.id
		FROM orders o
		WHERE o.expired_at IS NULL
			AND o.rejected_at IS NULL
			AND o.created_at < $1
			AND NOT EXISTS (SELECT 1 FROM payments p WHERE p.order_id = o.id)
		ORDER BY o.created_at ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, createdBefore, int(limit))
	if err != nil {
		zap.L().Error("can't get expirable orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("can't scan expirable order id", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindOpenPayouts returns orders handed to the payout provider whose payout has
// not reached a final status yet.
func (r *Repository) FindOpenPayouts(ctx context.Context, limit uint32) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE paid_out_at IS NOT NULL
			AND completed_at IS NULL
			AND rejected_at IS NULL
			AND expired_at IS NULL
			AND payout_status NOT IN ('Completed', 'Delivered', 'Cancelled', 'Rejected')
		ORDER BY paid_out_at ASC
		LIMIT $1
	`
	return r.findMany(ctx, query, int(limit))
}

func (r *Repository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET filled_at = $1, verified_at = $2, rejected_at = $3, expired_at = $4, completed_at = $5,
			paid_out_at = $6, compliance_approved_at = $7,
			payout_status = $8, payout_status_code = $9, reject_reason = $10
		WHERE id = $11
	`
	_, err := r.db.Exec(ctx, query,
		order.FilledAt, order.VerifiedAt, order.RejectedAt, order.ExpiredAt, order.CompletedAt,
		order.PaidOutAt, order.ComplianceAt,
		order.PayoutStatus, order.PayoutStatusCode, order.RejectReason,
		order.ID,
	)
	if err != nil {
		zap.L().Error("failed to update order", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (order_id, kind, amount, external_ref, verified_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		payment.OrderID, payment.Kind, payment.Amount, payment.ExternalRef, payment.VerifiedAt, payment.CreatedAt,
	).Scan(&payment.ID)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return domain.ErrNotAllowed
		}
		zap.L().Error("can't save payment", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) UpdatePayment(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET verified_at = $1, rejected_at = $2, reject_reason = $3
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, payment.VerifiedAt, payment.RejectedAt, payment.RejectReason, payment.ID)
	if err != nil {
		zap.L().Error("failed to update payment", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) findOne(ctx context.Context, query string, args ...any) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, query, args...))
	if err != nil || order == nil {
		return order, err
	}
	if err := r.attachPayments(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, *order)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachPayments(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) attachPayments(ctx context.Context, orders []*domain.Order) error {
	ids := make([]int, len(orders))
	byID := make(map[int]*domain.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE order_id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		zap.L().Error("can't get payments", zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return err
		}
		if o, ok := byID[payment.OrderID]; ok {
			o.Payment = payment
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.Reference, &o.UserID, &o.RecipientID, &o.RemitterID, &o.PairID, &o.PriorityID, &o.Tier,
		&o.PaymentAmount, &o.TransactionCost, &o.PriorityCost, &o.TaxCost, &o.TotalCost, &o.NetAmount,
		&o.Rate, &o.ReceivedAmount,
		&o.FilledAt, &o.VerifiedAt, &o.RejectedAt, &o.ExpiredAt, &o.CompletedAt, &o.PaidOutAt, &o.ComplianceAt,
		&o.PayoutStatus, &o.PayoutStatusCode, &o.RejectReason, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan order", zap.Error(err))
		return nil, err
	}
	return &o, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.ID, &p.OrderID, &p.Kind, &p.Amount, &p.ExternalRef,
		&p.VerifiedAt, &p.RejectedAt, &p.RejectReason, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan payment", zap.Error(err))
		return nil, err
	}
	return &p, nil
}
