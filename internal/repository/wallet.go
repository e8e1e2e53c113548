package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fkaradag/digital-wallet/internal/domain"
)

const walletColumns = `id, customer_id, name, currency, purchase_enabled,
	withdrawal_enabled, balance, usable_balance, version, created_at`

type WalletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE id = $1`, id,
	)
	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return w, nil
}

func (r *WalletRepository) GetByOwner(ctx context.Context, customerID uuid.UUID) ([]domain.Wallet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE customer_id = $1 ORDER BY created_at`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("GetByOwner: %w", err)
	}
	defer rows.Close()
	return collectWallets(rows, "GetByOwner")
}

func (r *WalletRepository) GetByOwnerAndCurrency(ctx context.Context, customerID uuid.UUID, currency domain.Currency) ([]domain.Wallet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+walletColumns+` FROM wallets
		WHERE customer_id = $1 AND currency = $2 ORDER BY created_at`,
		customerID, currency,
	)
	if err != nil {
		return nil, fmt.Errorf("GetByOwnerAndCurrency: %w", err)
	}
	defer rows.Close()
	return collectWallets(rows, "GetByOwnerAndCurrency")
}

// ExistsByOwnerAndName matches the display name case-insensitively; "Main"
// and "main" are the same wallet name for uniqueness purposes.
func (r *WalletRepository) ExistsByOwnerAndName(ctx context.Context, customerID uuid.UUID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM wallets WHERE customer_id = $1 AND LOWER(name) = LOWER($2)
		)`,
		customerID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ExistsByOwnerAndName: %w", err)
	}
	return exists, nil
}

func (r *WalletRepository) Create(ctx context.Context, w *domain.Wallet) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO wallets (
			id, customer_id, name, currency, purchase_enabled,
			withdrawal_enabled, balance, usable_balance, version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		w.ID, w.CustomerID, w.Name, w.Currency, w.PurchaseEnabled,
		w.WithdrawalEnabled, w.Balance, w.UsableBalance, w.Version, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *WalletRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Wallet, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE id = $1 FOR UPDATE`, id,
	)
	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetForUpdate: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetForUpdate: %w", err)
	}
	return w, nil
}

// UpdateBalances writes both balance fields together under a version check.
// The two fields must never be committed separately; the pending-settlement
// divergence between them is always produced by a single atomic write.
func (r *WalletRepository) UpdateBalances(ctx context.Context, tx *sql.Tx, id uuid.UUID, balance, usable decimal.Decimal, newVersion int64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE wallets SET balance = $1, usable_balance = $2, version = $3
		WHERE id = $4 AND version = $5`,
		balance, usable, newVersion, id, newVersion-1,
	)
	if err != nil {
		return fmt.Errorf("UpdateBalances: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateBalances: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("UpdateBalances: %w", domain.ErrVersionConflict)
	}
	return nil
}

func collectWallets(rows *sql.Rows, op string) ([]domain.Wallet, error) {
	var wallets []domain.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		wallets = append(wallets, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return wallets, nil
}

func scanWallet(s scanner) (*domain.Wallet, error) {
	var w domain.Wallet
	err := s.Scan(
		&w.ID, &w.CustomerID, &w.Name, &w.Currency, &w.PurchaseEnabled,
		&w.WithdrawalEnabled, &w.Balance, &w.UsableBalance, &w.Version, &w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
