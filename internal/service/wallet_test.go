package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkaradag/digital-wallet/internal/domain"
	"github.com/fkaradag/digital-wallet/internal/service"
	"github.com/fkaradag/digital-wallet/internal/testutil"
)

func TestCreateWallet_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_cw", domain.RoleCustomer)

	w, err := svc.wallets.CreateWallet(ctx, principalOf(owner), service.CreateWalletRequest{
		Name:     "Main",
		Currency: domain.CurrencyTRY,
	})

	require.NoError(t, err)
	assert.Equal(t, owner.ID, w.CustomerID)
	assert.True(t, w.PurchaseEnabled)
	assert.True(t, w.WithdrawalEnabled)
	assert.True(t, w.Balance.IsZero())
	assert.True(t, w.UsableBalance.IsZero())
}

func TestCreateWallet_DuplicateNameCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_cw_dup", domain.RoleCustomer)

	_, err := svc.wallets.CreateWallet(ctx, principalOf(owner), service.CreateWalletRequest{
		Name:     "Savings",
		Currency: domain.CurrencyTRY,
	})
	require.NoError(t, err)

	_, err = svc.wallets.CreateWallet(ctx, principalOf(owner), service.CreateWalletRequest{
		Name:     "sAvInGs",
		Currency: domain.CurrencyUSD,
	})
	require.ErrorIs(t, err, domain.ErrWalletNameTaken)
}

func TestCreateWallet_SameNameDifferentOwners(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	a := testutil.SeedCustomer(t, db, "owner_cw_a", domain.RoleCustomer)
	b := testutil.SeedCustomer(t, db, "owner_cw_b", domain.RoleCustomer)

	_, err := svc.wallets.CreateWallet(ctx, principalOf(a), service.CreateWalletRequest{
		Name: "Main", Currency: domain.CurrencyTRY,
	})
	require.NoError(t, err)

	_, err = svc.wallets.CreateWallet(ctx, principalOf(b), service.CreateWalletRequest{
		Name: "Main", Currency: domain.CurrencyTRY,
	})
	require.NoError(t, err)
}

func TestCreateWallet_CustomerCannotPickAnotherOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_cw_self", domain.RoleCustomer)
	other := testutil.SeedCustomer(t, db, "owner_cw_other", domain.RoleCustomer)

	w, err := svc.wallets.CreateWallet(ctx, principalOf(owner), service.CreateWalletRequest{
		OwnerID:  &other.ID,
		Name:     "Sneaky",
		Currency: domain.CurrencyTRY,
	})

	// The request is silently pinned to the caller's own identity.
	require.NoError(t, err)
	assert.Equal(t, owner.ID, w.CustomerID)
}

func TestCreateWallet_StaffCreatesForExplicitOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	staff := testutil.SeedCustomer(t, db, "staff_cw", domain.RoleStaff)
	customer := testutil.SeedCustomer(t, db, "customer_cw", domain.RoleCustomer)

	w, err := svc.wallets.CreateWallet(ctx, principalOf(staff), service.CreateWalletRequest{
		OwnerID:  &customer.ID,
		Name:     "Opened by branch",
		Currency: domain.CurrencyEUR,
	})

	require.NoError(t, err)
	assert.Equal(t, customer.ID, w.CustomerID)
}

func TestCreateWallet_OwnerMustExist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	staff := testutil.SeedCustomer(t, db, "staff_cw_nf", domain.RoleStaff)
	ghost := domain.Principal{CustomerID: staff.ID, Role: domain.RoleStaff}

	missing := testutil.SeedCustomer(t, db, "deleted_cw", domain.RoleCustomer).ID
	_, err := db.Exec(`DELETE FROM customers WHERE id = $1`, missing)
	require.NoError(t, err)

	_, err = svc.wallets.CreateWallet(ctx, ghost, service.CreateWalletRequest{
		OwnerID:  &missing,
		Name:     "Orphan",
		Currency: domain.CurrencyTRY,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateWallet_InvalidCurrency(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_cw_cur", domain.RoleCustomer)

	_, err := svc.wallets.CreateWallet(ctx, principalOf(owner), service.CreateWalletRequest{
		Name:     "Main",
		Currency: domain.Currency("BTC"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidCurrency)
}

func TestListWallets_FiltersAndOwnerResolution(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	owner := testutil.SeedCustomer(t, db, "owner_lw", domain.RoleCustomer)
	other := testutil.SeedCustomer(t, db, "other_lw", domain.RoleCustomer)
	staff := testutil.SeedCustomer(t, db, "staff_lw", domain.RoleStaff)

	testutil.SeedWallet(t, db, owner.ID, testutil.WalletOpts{Name: "TRY wallet", Currency: domain.CurrencyTRY})
	testutil.SeedWallet(t, db, owner.ID, testutil.WalletOpts{Name: "USD wallet", Currency: domain.CurrencyUSD})
	testutil.SeedWallet(t, db, other.ID, testutil.WalletOpts{Name: "Other", Currency: domain.CurrencyTRY})

	all, err := svc.wallets.ListWallets(ctx, principalOf(owner), nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	usd := domain.CurrencyUSD
	filtered, err := svc.wallets.ListWallets(ctx, principalOf(owner), nil, &usd)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "USD wallet", filtered[0].Name)

	// A customer asking for someone else's wallets still gets their own.
	pinned, err := svc.wallets.ListWallets(ctx, principalOf(owner), &other.ID, nil)
	require.NoError(t, err)
	assert.Len(t, pinned, 2)

	// Staff may list any owner's wallets.
	others, err := svc.wallets.ListWallets(ctx, principalOf(staff), &other.ID, nil)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "Other", others[0].Name)
}
