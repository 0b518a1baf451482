package usecases

import (
	"context"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
)

type OrdersRepository interface {
	InsertOrder(ctx context.Context, params entities.NewOrderParams) (*entities.Order, error)
	FindUserOrders(ctx context.Context, userID string) ([]entities.Order, error)
	CountPendingOrders(ctx context.Context) (int64, error)
}

type OrderService struct {
	repo OrdersRepository
}

func NewOrderService(repo OrdersRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (os *OrderService) PlaceOrder(ctx context.Context, params entities.NewOrderParams) (*entities.Order, error) {
	return os.repo.InsertOrder(ctx, params)
}

func (os *OrderService) UserOrders(ctx context.Context, userID string) ([]entities.Order, error) {
	return os.repo.FindUserOrders(ctx, userID)
}

func (os *OrderService) PendingOrderCount(ctx context.Context) (int64, error) {
	return os.repo.CountPendingOrders(ctx)
}
