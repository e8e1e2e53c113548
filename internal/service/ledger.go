package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fkaradag/digital-wallet/internal/auth"
	"github.com/fkaradag/digital-wallet/internal/clock"
	"github.com/fkaradag/digital-wallet/internal/domain"
	"github.com/fkaradag/digital-wallet/internal/logging"
	"github.com/fkaradag/digital-wallet/internal/repository"
)

type lockedWalletRepo interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Wallet, error)
	UpdateBalances(ctx context.Context, tx *sql.Tx, id uuid.UUID, balance, usable decimal.Decimal, newVersion int64) error
}

type transactionRepo interface {
	Create(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error
	GetByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error)
}

// LedgerService applies deposits and withdrawals to a wallet's two balances
// and records the movement. Every mutation locks the wallet row, writes both
// balance fields and the transaction record, and commits as one unit.
type LedgerService struct {
	wallets      lockedWalletRepo
	transactions transactionRepo
	walletAccess *WalletService
	db           *repository.DB
	now          clock.Clock
}

func NewLedgerService(wallets lockedWalletRepo, transactions transactionRepo, walletAccess *WalletService, db *repository.DB, now clock.Clock) *LedgerService {
	return &LedgerService{
		wallets:      wallets,
		transactions: transactions,
		walletAccess: walletAccess,
		db:           db,
		now:          now,
	}
}

type MovementRequest struct {
	WalletID        uuid.UUID
	Amount          decimal.Decimal
	Counterparty    domain.CounterpartyKind
	CounterpartyRef string
}

func (r MovementRequest) validate() error {
	if !r.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !r.Counterparty.IsValid() {
		return domain.ErrInvalidCounterparty
	}
	return nil
}

// Deposit credits the wallet. The full amount lands in the total balance
// immediately; it only becomes usable once the transaction is approved,
// which happens inline for amounts at or below the pending threshold.
func (s *LedgerService) Deposit(ctx context.Context, p domain.Principal, req MovementRequest) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}

	var t *domain.Transaction
	err := s.db.RunInTx(ctx, func(tx *sql.Tx) error {
		w, err := s.wallets.GetForUpdate(ctx, tx, req.WalletID)
		if err != nil {
			return fmt.Errorf("Deposit: %w", err)
		}
		if !auth.CanAccess(w, p) {
			return fmt.Errorf("Deposit: %w", domain.ErrUnauthorized)
		}

		status := statusForAmount(req.Amount)

		balance := w.Balance.Add(req.Amount)
		usable := w.UsableBalance
		if status == domain.StatusApproved {
			usable = usable.Add(req.Amount)
		}

		if err := s.wallets.UpdateBalances(ctx, tx, w.ID, balance, usable, w.Version+1); err != nil {
			return fmt.Errorf("Deposit: %w", err)
		}

		t = s.newTransaction(w.ID, req, domain.KindDeposit, status)
		if err := s.transactions.Create(ctx, tx, t); err != nil {
			return fmt.Errorf("Deposit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("deposit recorded",
		"transaction_id", t.ID,
		"wallet_id", req.WalletID,
		"amount", req.Amount,
		"status", t.Status,
	)

	return t, nil
}

// Withdraw debits the wallet. The hold against usable balance is placed
// immediately for both outcomes; the total balance only drops once the
// withdrawal is approved.
func (s *LedgerService) Withdraw(ctx context.Context, p domain.Principal, req MovementRequest) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	var t *domain.Transaction
	err := s.db.RunInTx(ctx, func(tx *sql.Tx) error {
		w, err := s.wallets.GetForUpdate(ctx, tx, req.WalletID)
		if err != nil {
			return fmt.Errorf("Withdraw: %w", err)
		}
		if !auth.CanAccess(w, p) {
			return fmt.Errorf("Withdraw: %w", domain.ErrUnauthorized)
		}

		if err := checkWithdrawPolicy(w, req.Counterparty); err != nil {
			return fmt.Errorf("Withdraw: %w", err)
		}

		if w.UsableBalance.LessThan(req.Amount) {
			return fmt.Errorf("Withdraw: %w", domain.ErrInsufficientFunds)
		}

		status := statusForAmount(req.Amount)

		usable := w.UsableBalance.Sub(req.Amount)
		balance := w.Balance
		if status == domain.StatusApproved {
			balance = balance.Sub(req.Amount)
		}

		if err := s.wallets.UpdateBalances(ctx, tx, w.ID, balance, usable, w.Version+1); err != nil {
			return fmt.Errorf("Withdraw: %w", err)
		}

		t = s.newTransaction(w.ID, req, domain.KindWithdraw, status)
		if err := s.transactions.Create(ctx, tx, t); err != nil {
			return fmt.Errorf("Withdraw: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("withdrawal recorded",
		"transaction_id", t.ID,
		"wallet_id", req.WalletID,
		"amount", req.Amount,
		"status", t.Status,
	)

	return t, nil
}

// ListWalletTransactions returns the wallet's movement history, newest
// first, after the usual access gate.
func (s *LedgerService) ListWalletTransactions(ctx context.Context, p domain.Principal, walletID uuid.UUID) ([]domain.Transaction, error) {
	if _, err := s.walletAccess.GetWalletForAccess(ctx, p, walletID); err != nil {
		return nil, fmt.Errorf("ListWalletTransactions: %w", err)
	}

	txs, err := s.transactions.GetByWallet(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("ListWalletTransactions: %w", err)
	}
	return txs, nil
}

func (s *LedgerService) newTransaction(walletID uuid.UUID, req MovementRequest, kind domain.TransactionKind, status domain.TransactionStatus) *domain.Transaction {
	return &domain.Transaction{
		ID:              uuid.New(),
		WalletID:        walletID,
		Amount:          req.Amount,
		Kind:            kind,
		Counterparty:    req.Counterparty,
		CounterpartyRef: req.CounterpartyRef,
		Status:          status,
		CreatedAt:       s.now(),
	}
}

func statusForAmount(amount decimal.Decimal) domain.TransactionStatus {
	if amount.GreaterThan(domain.PendingThreshold) {
		return domain.StatusPending
	}
	return domain.StatusApproved
}

func checkWithdrawPolicy(w *domain.Wallet, kind domain.CounterpartyKind) error {
	switch kind {
	case domain.CounterpartyPaymentNetwork:
		if !w.PurchaseEnabled {
			return domain.ErrPurchasesDisabled
		}
	case domain.CounterpartyBankAccount:
		if !w.WithdrawalEnabled {
			return domain.ErrWithdrawalsDisabled
		}
	}
	return nil
}
