package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fkaradag/digital-wallet/internal/clock"
	"github.com/fkaradag/digital-wallet/internal/domain"
	"github.com/fkaradag/digital-wallet/internal/logging"
	"github.com/fkaradag/digital-wallet/internal/repository"
)

type decidableTransactionRepo interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uuid.UUID, status domain.TransactionStatus, updatedAt time.Time) error
}

// ApprovalService settles pending transactions. The wallet's settlement
// delta and the status flip commit in the same database transaction, so a
// crash can never leave a pending transaction whose effect was already
// applied.
type ApprovalService struct {
	transactions decidableTransactionRepo
	wallets      lockedWalletRepo
	db           *repository.DB
	now          clock.Clock
}

func NewApprovalService(transactions decidableTransactionRepo, wallets lockedWalletRepo, db *repository.DB, now clock.Clock) *ApprovalService {
	return &ApprovalService{
		transactions: transactions,
		wallets:      wallets,
		db:           db,
		now:          now,
	}
}

// Decide moves a pending transaction to approved or denied and reconciles
// the wallet's balances for it. Staff only; any other principal gets an
// authorization failure regardless of wallet ownership.
func (s *ApprovalService) Decide(ctx context.Context, p domain.Principal, transactionID uuid.UUID, target domain.TransactionStatus) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	if !p.IsStaff() {
		return nil, fmt.Errorf("Decide: %w", domain.ErrUnauthorized)
	}
	if target != domain.StatusApproved && target != domain.StatusDenied {
		return nil, fmt.Errorf("Decide: %w", domain.ErrInvalidDecision)
	}

	var decided *domain.Transaction
	err := s.db.RunInTx(ctx, func(tx *sql.Tx) error {
		t, err := s.transactions.GetForUpdate(ctx, tx, transactionID)
		if err != nil {
			return fmt.Errorf("Decide: %w", err)
		}
		if !t.IsPending() {
			return fmt.Errorf("Decide: %w", domain.ErrTransactionNotPending)
		}

		w, err := s.wallets.GetForUpdate(ctx, tx, t.WalletID)
		if err != nil {
			return fmt.Errorf("Decide: wallet: %w", err)
		}

		balance, usable := settle(w, t, target)
		if err := s.wallets.UpdateBalances(ctx, tx, w.ID, balance, usable, w.Version+1); err != nil {
			return fmt.Errorf("Decide: %w", err)
		}

		decidedAt := s.now()
		if err := s.transactions.UpdateStatus(ctx, tx, t.ID, target, decidedAt); err != nil {
			return fmt.Errorf("Decide: %w", err)
		}

		t.Status = target
		t.UpdatedAt = &decidedAt
		decided = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("transaction decided",
		"transaction_id", decided.ID,
		"wallet_id", decided.WalletID,
		"kind", decided.Kind,
		"status", decided.Status,
	)

	return decided, nil
}

// settle computes the post-decision balances. Approval completes the half of
// the movement deferred at request time; denial undoes the half already
// applied. Either way the two balances come back into agreement for this
// transaction's contribution.
func settle(w *domain.Wallet, t *domain.Transaction, target domain.TransactionStatus) (balance, usable decimal.Decimal) {
	balance, usable = w.Balance, w.UsableBalance

	if target == domain.StatusApproved {
		if t.Kind == domain.KindDeposit {
			usable = usable.Add(t.Amount)
		} else {
			balance = balance.Sub(t.Amount)
		}
		return balance, usable
	}

	if t.Kind == domain.KindDeposit {
		balance = balance.Sub(t.Amount)
	} else {
		usable = usable.Add(t.Amount)
	}
	return balance, usable
}
