package repository

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	tx "github.com/Thiht/transactor/pgx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
	"github.com/sand/crypto-exchanger-app/backend/pkg/database"
)

type OrdersRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	builder    sq.StatementBuilderType
	transactor *tx.Transactor
}

func NewOrdersRepository(logger *slog.Logger, pg *database.Postgres) *OrdersRepository {
	return &OrdersRepository{logger: logger, db: pg.DBGetter, builder: pg.Builder, transactor: pg.Transactor}
}

// InsertOrder persists a new order. Status is forced to pending no matter
// what the caller supplied; transitions happen out-of-band.
func (r *OrdersRepository) InsertOrder(ctx context.Context, params entities.NewOrderParams) (*entities.Order, error) {
	order := &entities.Order{
		ID:               uuid.New(),
		UserID:           params.UserID,
		SendAmount:       params.SendAmount,
		SendCurrency:     params.SendCurrency,
		ReceiveAmount:    params.ReceiveAmount,
		ReceiveCurrency:  params.ReceiveCurrency,
		RecipientAddress: params.RecipientAddress,
		Status:           entities.OrderStatusPending,
	}

	err := r.db(ctx).QueryRow(ctx,
		`INSERT INTO orders (id, user_id, send_amount, send_currency, receive_amount, receive_currency, recipient_address, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
         RETURNING created_at`,
		order.ID, order.UserID, order.SendAmount, order.SendCurrency,
		order.ReceiveAmount, order.ReceiveCurrency, order.RecipientAddress).Scan(&order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	r.logger.Info("Order placed", "order_id", order.ID, "user_id", order.UserID,
		"send", order.SendCurrency, "receive", order.ReceiveCurrency)
	return order, nil
}

// FindUserOrders returns the user's orders, newest first. Ordering is applied
// by the store, never re-sorted in process.
func (r *OrdersRepository) FindUserOrders(ctx context.Context, userID string) ([]entities.Order, error) {
	query, args, err := r.builder.
		Select("id", "user_id", "send_amount", "send_currency", "receive_amount",
			"receive_currency", "recipient_address", "status", "created_at").
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user orders query: %w", err)
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user orders: %w", err)
	}
	defer rows.Close()

	orders, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Order])
	if err != nil {
		r.logger.Error("failed to collect user orders rows", "error", err)
		return nil, fmt.Errorf("failed to collect user orders rows: %w", err)
	}

	return orders, nil
}

// CountPendingOrders reports how many orders still await out-of-band settlement.
func (r *OrdersRepository) CountPendingOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db(ctx).QueryRow(ctx,
		"SELECT COUNT(*) FROM orders WHERE status = 'pending'").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending orders: %w", err)
	}
	return count, nil
}
