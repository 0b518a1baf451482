package usecases

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
)

type fakeOrdersRepository struct {
	orders []entities.Order
	now    time.Time
}

func (f *fakeOrdersRepository) InsertOrder(_ context.Context, params entities.NewOrderParams) (*entities.Order, error) {
	f.now = f.now.Add(time.Second)
	order := entities.Order{
		ID:               uuid.New(),
		UserID:           params.UserID,
		SendAmount:       params.SendAmount,
		SendCurrency:     params.SendCurrency,
		ReceiveAmount:    params.ReceiveAmount,
		ReceiveCurrency:  params.ReceiveCurrency,
		RecipientAddress: params.RecipientAddress,
		Status:           entities.OrderStatusPending,
		CreatedAt:        f.now,
	}
	f.orders = append(f.orders, order)
	return &order, nil
}

func (f *fakeOrdersRepository) FindUserOrders(_ context.Context, userID string) ([]entities.Order, error) {
	var orders []entities.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (f *fakeOrdersRepository) CountPendingOrders(_ context.Context) (int64, error) {
	var count int64
	for _, o := range f.orders {
		if o.Status == entities.OrderStatusPending {
			count++
		}
	}
	return count, nil
}

func TestPlaceOrderAlwaysPending(t *testing.T) {
	repo := &fakeOrdersRepository{now: time.Now()}
	service := NewOrderService(repo)

	order, err := service.PlaceOrder(context.Background(), entities.NewOrderParams{
		UserID:           "user-1",
		SendAmount:       "0.01",
		SendCurrency:     entities.BTC,
		ReceiveAmount:    "0.1500",
		ReceiveCurrency:  entities.ETH,
		RecipientAddress: "0xrecipient",
	})
	require.NoError(t, err)
	require.Equal(t, entities.OrderStatusPending, order.Status)
	require.NotEqual(t, uuid.Nil, order.ID)
	require.False(t, order.CreatedAt.IsZero())
}

func TestUserOrdersNewestFirst(t *testing.T) {
	repo := &fakeOrdersRepository{now: time.Now()}
	service := NewOrderService(repo)
	ctx := context.Background()

	for _, amount := range []string{"1", "2", "3"} {
		_, err := service.PlaceOrder(ctx, entities.NewOrderParams{
			UserID:           "user-1",
			SendAmount:       amount,
			SendCurrency:     entities.BTC,
			ReceiveAmount:    amount,
			ReceiveCurrency:  entities.ETH,
			RecipientAddress: "0xrecipient",
		})
		require.NoError(t, err)
	}

	orders, err := service.UserOrders(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 3)

	for i := 1; i < len(orders); i++ {
		require.True(t, orders[i-1].CreatedAt.After(orders[i].CreatedAt),
			"orders must be strictly newest first")
	}
	require.Equal(t, "3", orders[0].SendAmount)

	count, err := service.PendingOrderCount(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}
