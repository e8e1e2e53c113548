package service_test

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fkaradag/digital-wallet/internal/clock"
	"github.com/fkaradag/digital-wallet/internal/domain"
	"github.com/fkaradag/digital-wallet/internal/repository"
	"github.com/fkaradag/digital-wallet/internal/service"
)

type services struct {
	wallets   *service.WalletService
	ledger    *service.LedgerService
	approvals *service.ApprovalService
}

func setupServices(t *testing.T, pool *sql.DB) services {
	t.Helper()

	db := repository.NewDB(pool)
	wallets := repository.NewWalletRepository(pool)
	transactions := repository.NewTransactionRepository(pool)
	customers := repository.NewCustomerRepository(pool)

	now := clock.System()
	walletSvc := service.NewWalletService(wallets, customers, now)
	return services{
		wallets:   walletSvc,
		ledger:    service.NewLedgerService(wallets, transactions, walletSvc, db, now),
		approvals: service.NewApprovalService(transactions, wallets, db, now),
	}
}

func principalOf(c *domain.Customer) domain.Principal {
	return domain.Principal{CustomerID: c.ID, Role: c.Role}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
