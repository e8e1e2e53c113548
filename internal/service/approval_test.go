package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkaradag/digital-wallet/internal/domain"
	"github.com/fkaradag/digital-wallet/internal/service"
	"github.com/fkaradag/digital-wallet/internal/testutil"
)

func seedPendingDeposit(t *testing.T, db *sql.DB, svc services, owner *domain.Customer, w *domain.Wallet, amount string) *domain.Transaction {
	t.Helper()
	tx, err := svc.ledger.Deposit(context.Background(), principalOf(owner), service.MovementRequest{
		WalletID:        w.ID,
		Amount:          dec(amount),
		Counterparty:    domain.CounterpartyBankAccount,
		CounterpartyRef: "x",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, tx.Status)
	return tx
}

func seedPendingWithdraw(t *testing.T, db *sql.DB, svc services, owner *domain.Customer, w *domain.Wallet, amount string) *domain.Transaction {
	t.Helper()
	tx, err := svc.ledger.Withdraw(context.Background(), principalOf(owner), service.MovementRequest{
		WalletID:        w.ID,
		Amount:          dec(amount),
		Counterparty:    domain.CounterpartyBankAccount,
		CounterpartyRef: "x",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, tx.Status)
	return tx
}

func TestDecide_ApproveDeposit_ReleasesUsable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_ap_dep", domain.RoleCustomer)
	staff := testutil.SeedCustomer(t, db, "staff_ap_dep", domain.RoleStaff)
	w := testutil.SeedWallet(t, db, owner.ID, openWallet("1000.00", "1000.00"))
	tx := seedPendingDeposit(t, db, svc, owner, w, "1500.00")

	decided, err := svc.approvals.Decide(ctx, principalOf(staff), tx.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, decided.Status)
	require.NotNil(t, decided.UpdatedAt)

	// Balance already holds the credit; approval only frees it up.
	balance, usable := testutil.GetWalletBalances(t, db, w.ID)
	assertAmount(t, "2500.00", balance)
	assertAmount(t, "2500.00", usable)
}

func TestDecide_DenyDeposit_RevertsCredit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_dn_dep", domain.RoleCustomer)
	staff := testutil.SeedCustomer(t, db, "staff_dn_dep", domain.RoleStaff)
	w := testutil.SeedWallet(t, db, owner.ID, openWallet("1000.00", "1000.00"))
	tx := seedPendingDeposit(t, db, svc, owner, w, "1500.00")

	decided, err := svc.approvals.Decide(ctx, principalOf(staff), tx.ID, domain.StatusDenied)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDenied, decided.Status)

	balance, usable := testutil.GetWalletBalances(t, db, w.ID)
	assertAmount(t, "1000.00", balance)
	assertAmount(t, "1000.00", usable)
}

func TestDecide_ApproveWithdraw_FinalizesDebit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_ap_wd", domain.RoleCustomer)
	staff := testutil.SeedCustomer(t, db, "staff_ap_wd", domain.RoleStaff)
	w := testutil.SeedWallet(t, db, owner.ID, openWallet("2000.00", "2000.00"))
	tx := seedPendingWithdraw(t, db, svc, owner, w, "1500.00")

	decided, err := svc.approvals.Decide(ctx, principalOf(staff), tx.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, decided.Status)

	balance, usable := testutil.GetWalletBalances(t, db, w.ID)
	assertAmount(t, "500.00", balance)
	assertAmount(t, "500.00", usable)
}

func TestDecide_DenyWithdraw_ReleasesHold(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_dn_wd", domain.RoleCustomer)
	staff := testutil.SeedCustomer(t, db, "staff_dn_wd", domain.RoleStaff)
	w := testutil.SeedWallet(t, db, owner.ID, openWallet("2000.00", "2000.00"))
	tx := seedPendingWithdraw(t, db, svc, owner, w, "1500.00")

	decided, err := svc.approvals.Decide(ctx, principalOf(staff), tx.ID, domain.StatusDenied)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDenied, decided.Status)

	balance, usable := testutil.GetWalletBalances(t, db, w.ID)
	assertAmount(t, "2000.00", balance)
	assertAmount(t, "2000.00", usable)
}

func TestDecide_AlreadyDecided(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_twice", domain.RoleCustomer)
	staff := testutil.SeedCustomer(t, db, "staff_twice", domain.RoleStaff)
	w := testutil.SeedWallet(t, db, owner.ID, openWallet("1000.00", "1000.00"))
	tx := seedPendingDeposit(t, db, svc, owner, w, "1500.00")

	_, err := svc.approvals.Decide(ctx, principalOf(staff), tx.ID, domain.StatusApproved)
	require.NoError(t, err)

	_, err = svc.approvals.Decide(ctx, principalOf(staff), tx.ID, domain.StatusDenied)
	require.ErrorIs(t, err, domain.ErrTransactionNotPending)

	// The second decision must not have touched anything.
	balance, usable := testutil.GetWalletBalances(t, db, w.ID)
	assertAmount(t, "2500.00", balance)
	assertAmount(t, "2500.00", usable)
	assert.Equal(t, domain.StatusApproved, testutil.GetTransactionStatus(t, db, tx.ID))
}

func TestDecide_InvalidTargetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_badtgt", domain.RoleCustomer)
	staff := testutil.SeedCustomer(t, db, "staff_badtgt", domain.RoleStaff)
	w := testutil.SeedWallet(t, db, owner.ID, openWallet("1000.00", "1000.00"))
	tx := seedPendingDeposit(t, db, svc, owner, w, "1500.00")

	_, err := svc.approvals.Decide(ctx, principalOf(staff), tx.ID, domain.StatusPending)
	require.ErrorIs(t, err, domain.ErrInvalidDecision)

	_, err = svc.approvals.Decide(ctx, principalOf(staff), tx.ID, domain.TransactionStatus("settled"))
	require.ErrorIs(t, err, domain.ErrInvalidDecision)

	assert.Equal(t, domain.StatusPending, testutil.GetTransactionStatus(t, db, tx.ID))
}

func TestDecide_NonStaffForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_nostaff", domain.RoleCustomer)
	w := testutil.SeedWallet(t, db, owner.ID, openWallet("1000.00", "1000.00"))
	tx := seedPendingDeposit(t, db, svc, owner, w, "1500.00")

	// Even the wallet owner cannot decide their own transaction.
	_, err := svc.approvals.Decide(ctx, principalOf(owner), tx.ID, domain.StatusApproved)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, domain.StatusPending, testutil.GetTransactionStatus(t, db, tx.ID))
}

func TestDecide_TransactionNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	staff := testutil.SeedCustomer(t, db, "staff_nf", domain.RoleStaff)

	_, err := svc.approvals.Decide(ctx, principalOf(staff), uuid.New(), domain.StatusApproved)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
