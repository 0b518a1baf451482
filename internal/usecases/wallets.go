package usecases

import (
	"context"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
)

type WalletsRepository interface {
	CreateWallet(ctx context.Context, address string, currency entities.Currency) (*entities.Wallet, error)
	FindAdminWallets(ctx context.Context) ([]entities.Wallet, error)
}

// WalletService exposes the admin receiving-wallet operations.
type WalletService struct {
	repo WalletsRepository
}

func NewWalletService(repo WalletsRepository) *WalletService {
	return &WalletService{repo: repo}
}

func (ws *WalletService) RegisterAdminWallet(ctx context.Context, address string, currency entities.Currency) (*entities.Wallet, error) {
	return ws.repo.CreateWallet(ctx, address, currency)
}

func (ws *WalletService) AdminWallets(ctx context.Context) ([]entities.Wallet, error) {
	return ws.repo.FindAdminWallets(ctx)
}
