package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fkaradag/digital-wallet/internal/auth"
	"github.com/fkaradag/digital-wallet/internal/clock"
	"github.com/fkaradag/digital-wallet/internal/domain"
	"github.com/fkaradag/digital-wallet/internal/logging"
)

type walletRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByOwner(ctx context.Context, customerID uuid.UUID) ([]domain.Wallet, error)
	GetByOwnerAndCurrency(ctx context.Context, customerID uuid.UUID, currency domain.Currency) ([]domain.Wallet, error)
	ExistsByOwnerAndName(ctx context.Context, customerID uuid.UUID, name string) (bool, error)
	Create(ctx context.Context, w *domain.Wallet) error
}

type customerChecker interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}

type WalletService struct {
	wallets   walletRepo
	customers customerChecker
	now       clock.Clock
}

func NewWalletService(wallets walletRepo, customers customerChecker, now clock.Clock) *WalletService {
	return &WalletService{wallets: wallets, customers: customers, now: now}
}

type CreateWalletRequest struct {
	OwnerID           *uuid.UUID
	Name              string
	Currency          domain.Currency
	PurchaseEnabled   *bool
	WithdrawalEnabled *bool
}

func (s *WalletService) CreateWallet(ctx context.Context, p domain.Principal, req CreateWalletRequest) (*domain.Wallet, error) {
	log := logging.FromContext(ctx)

	ownerID := auth.ResolveOwner(req.OwnerID, p)

	if _, err := s.customers.GetByID(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("CreateWallet: owner: %w", err)
	}

	if !req.Currency.IsValid() {
		return nil, fmt.Errorf("CreateWallet: %w", domain.ErrInvalidCurrency)
	}

	taken, err := s.wallets.ExistsByOwnerAndName(ctx, ownerID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("CreateWallet: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("CreateWallet: %w", domain.ErrWalletNameTaken)
	}

	w := &domain.Wallet{
		ID:                uuid.New(),
		CustomerID:        ownerID,
		Name:              req.Name,
		Currency:          req.Currency,
		PurchaseEnabled:   boolOrDefault(req.PurchaseEnabled, true),
		WithdrawalEnabled: boolOrDefault(req.WithdrawalEnabled, true),
		Balance:           decimal.Zero,
		UsableBalance:     decimal.Zero,
		Version:           1,
		CreatedAt:         s.now(),
	}

	if err := s.wallets.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("CreateWallet: %w", err)
	}

	log.Info("wallet created",
		"wallet_id", w.ID,
		"customer_id", ownerID,
		"currency", w.Currency,
	)

	return w, nil
}

// ListWallets lists the resolved owner's wallets, optionally narrowed to one
// currency. Non-staff principals always get their own wallets no matter
// which owner they asked for.
func (s *WalletService) ListWallets(ctx context.Context, p domain.Principal, ownerID *uuid.UUID, currency *domain.Currency) ([]domain.Wallet, error) {
	cid := auth.ResolveOwner(ownerID, p)

	if currency != nil {
		if !currency.IsValid() {
			return nil, fmt.Errorf("ListWallets: %w", domain.ErrInvalidCurrency)
		}
		wallets, err := s.wallets.GetByOwnerAndCurrency(ctx, cid, *currency)
		if err != nil {
			return nil, fmt.Errorf("ListWallets: %w", err)
		}
		return wallets, nil
	}

	wallets, err := s.wallets.GetByOwner(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("ListWallets: %w", err)
	}
	return wallets, nil
}

// GetWalletForAccess resolves the wallet and enforces the access gate:
// missing wallets are not-found, foreign wallets are an authorization
// failure, in that order.
func (s *WalletService) GetWalletForAccess(ctx context.Context, p domain.Principal, walletID uuid.UUID) (*domain.Wallet, error) {
	w, err := s.wallets.GetByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("GetWalletForAccess: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetWalletForAccess: %w", err)
	}
	if !auth.CanAccess(w, p) {
		return nil, fmt.Errorf("GetWalletForAccess: %w", domain.ErrUnauthorized)
	}
	return w, nil
}

func boolOrDefault(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
