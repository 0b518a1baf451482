package handlers

import (
	"context"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, params entities.NewOrderParams) (*entities.Order, error)
	UserOrders(ctx context.Context, userID string) ([]entities.Order, error)
	PendingOrderCount(ctx context.Context) (int64, error)
}
