package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	tx "github.com/Thiht/transactor/pgx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
	"github.com/sand/crypto-exchanger-app/backend/pkg/database"
)

// Postgres unique_violation.
const uniqueViolationCode = "23505"

// WalletsRepository persists admin receiving wallets.
type WalletsRepository struct {
	logger     *slog.Logger
	db         tx.DBGetter
	builder    sq.StatementBuilderType
	transactor *tx.Transactor
}

func NewWalletsRepository(logger *slog.Logger, pg *database.Postgres) *WalletsRepository {
	return &WalletsRepository{
		logger:     logger,
		db:         pg.DBGetter,
		builder:    pg.Builder,
		transactor: pg.Transactor,
	}
}

// CreateWallet inserts a new admin wallet with a fresh identifier. Returns
// entities.ErrWalletAddressExists when the address is already registered.
func (r *WalletsRepository) CreateWallet(ctx context.Context, address string, currency entities.Currency) (*entities.Wallet, error) {
	wallet := &entities.Wallet{
		ID:            uuid.New(),
		Address:       address,
		Currency:      currency,
		IsAdminWallet: true,
	}

	err := r.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var exists bool
		if err := r.db(ctx).QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM wallets WHERE address = $1)", address).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check wallet address: %w", err)
		}
		if exists {
			return entities.ErrWalletAddressExists
		}

		err := r.db(ctx).QueryRow(ctx,
			"INSERT INTO wallets (id, address, currency, is_admin_wallet) VALUES ($1, $2, $3, TRUE) RETURNING created_at",
			wallet.ID, address, currency).Scan(&wallet.CreatedAt)
		if err != nil {
			// A concurrent registration of the same address loses the race on
			// the unique constraint instead of the exists check.
			if isUniqueViolation(err) {
				return entities.ErrWalletAddressExists
			}
			return fmt.Errorf("failed to insert wallet: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Admin wallet registered", "address", address, "currency", currency)
	return wallet, nil
}

// FindAdminWallets retrieves all wallets flagged as admin receiving wallets.
// No explicit ordering is applied.
func (r *WalletsRepository) FindAdminWallets(ctx context.Context) ([]entities.Wallet, error) {
	query, args, err := r.builder.
		Select("id", "address", "currency", "is_admin_wallet", "created_at").
		From("wallets").
		Where(sq.Eq{"is_admin_wallet": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build admin wallets query: %w", err)
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin wallets: %w", err)
	}
	defer rows.Close()

	wallets, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Wallet])
	if err != nil {
		r.logger.Error("failed to collect admin wallets rows", "error", err)
		return nil, fmt.Errorf("failed to collect admin wallets rows: %w", err)
	}

	return wallets, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
