package handlers

import (
	"context"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
)

type WalletService interface {
	RegisterAdminWallet(ctx context.Context, address string, currency entities.Currency) (*entities.Wallet, error)
	AdminWallets(ctx context.Context) ([]entities.Wallet, error)
}
