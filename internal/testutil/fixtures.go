package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/fkaradag/digital-wallet/internal/domain"
)

func SeedCustomer(t *testing.T, db *sql.DB, username string, role domain.Role) *domain.Customer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	c := &domain.Customer{
		ID:           uuid.New(),
		Name:         "Test",
		Surname:      "Customer",
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO customers (id, name, surname, username, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Surname, c.Username, c.PasswordHash, c.Role, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed customer %s: %v", username, err)
	}
	return c
}

type WalletOpts struct {
	Name              string
	Currency          domain.Currency
	Balance           decimal.Decimal
	UsableBalance     decimal.Decimal
	PurchaseEnabled   bool
	WithdrawalEnabled bool
}

func SeedWallet(t *testing.T, db *sql.DB, customerID uuid.UUID, opts WalletOpts) *domain.Wallet {
	t.Helper()

	if opts.Name == "" {
		opts.Name = "Main"
	}
	if opts.Currency == "" {
		opts.Currency = domain.CurrencyTRY
	}

	w := &domain.Wallet{
		ID:                uuid.New(),
		CustomerID:        customerID,
		Name:              opts.Name,
		Currency:          opts.Currency,
		PurchaseEnabled:   opts.PurchaseEnabled,
		WithdrawalEnabled: opts.WithdrawalEnabled,
		Balance:           opts.Balance,
		UsableBalance:     opts.UsableBalance,
		Version:           1,
		CreatedAt:         time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO wallets (
			id, customer_id, name, currency, purchase_enabled,
			withdrawal_enabled, balance, usable_balance, version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		w.ID, w.CustomerID, w.Name, w.Currency, w.PurchaseEnabled,
		w.WithdrawalEnabled, w.Balance, w.UsableBalance, w.Version, w.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed wallet %s: %v", opts.Name, err)
	}
	return w
}

// GetWalletBalances reads both balance fields back in one query so tests
// always observe them from the same committed state.
func GetWalletBalances(t *testing.T, db *sql.DB, walletID uuid.UUID) (balance, usable decimal.Decimal) {
	t.Helper()

	err := db.QueryRow(
		`SELECT balance, usable_balance FROM wallets WHERE id = $1`, walletID,
	).Scan(&balance, &usable)
	if err != nil {
		t.Fatalf("get wallet balances %s: %v", walletID, err)
	}
	return balance, usable
}

func GetTransactionStatus(t *testing.T, db *sql.DB, transactionID uuid.UUID) domain.TransactionStatus {
	t.Helper()

	var status domain.TransactionStatus
	err := db.QueryRow(
		`SELECT status FROM transactions WHERE id = $1`, transactionID,
	).Scan(&status)
	if err != nil {
		t.Fatalf("get transaction status %s: %v", transactionID, err)
	}
	return status
}

func CountTransactions(t *testing.T, db *sql.DB, walletID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM transactions WHERE wallet_id = $1`, walletID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("count transactions for wallet %s: %v", walletID, err)
	}
	return count
}

// PendingDelta returns the total amount held by pending transactions on the
// wallet. A pending deposit is counted in balance but not usable; a pending
// withdrawal is already out of usable but still in balance. Either way the
// gap between the two fields grows by the amount, so this sum must equal
// balance minus usable balance at any committed state.
func PendingDelta(t *testing.T, db *sql.DB, walletID uuid.UUID) decimal.Decimal {
	t.Helper()

	var delta decimal.Decimal
	err := db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0)
		 FROM transactions WHERE wallet_id = $1 AND status = 'pending'`, walletID,
	).Scan(&delta)
	if err != nil {
		t.Fatalf("pending delta for wallet %s: %v", walletID, err)
	}
	return delta
}
