// Package seed loads demo data for local development: one staff user and two
// customers with a wallet each. Enabled with SEED_DEMO_DATA=true; every
// insert is idempotent so restarts are safe.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fkaradag/digital-wallet/internal/domain"
)

var (
	staffID     = uuid.MustParse("10000000-0000-0000-0000-000000000001")
	customer1ID = uuid.MustParse("10000000-0000-0000-0000-000000000002")
	customer2ID = uuid.MustParse("10000000-0000-0000-0000-000000000003")
)

type demoUser struct {
	id       uuid.UUID
	name     string
	surname  string
	username string
	password string
	role     domain.Role
}

func Run(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	users := []demoUser{
		{staffID, "Ayse", "Yilmaz", "employee", "employee123", domain.RoleStaff},
		{customer1ID, "Ali", "Kaya", "customer1", "customer123", domain.RoleCustomer},
		{customer2ID, "Mehmet", "Ozkan", "customer2", "customer456", domain.RoleCustomer},
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed.Run: hash password: %w", err)
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO customers (id, name, surname, username, password_hash, role)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO NOTHING`,
			u.id, u.name, u.surname, u.username, string(hash), u.role,
		)
		if err != nil {
			return fmt.Errorf("seed.Run: insert customer %s: %w", u.username, err)
		}
	}

	wallets := []struct {
		id       uuid.UUID
		owner    uuid.UUID
		name     string
		currency domain.Currency
	}{
		{uuid.MustParse("20000000-0000-0000-0000-000000000001"), customer1ID, "Main", domain.CurrencyTRY},
		{uuid.MustParse("20000000-0000-0000-0000-000000000002"), customer2ID, "Savings", domain.CurrencyUSD},
	}

	for _, w := range wallets {
		_, err := db.ExecContext(ctx,
			`INSERT INTO wallets (id, customer_id, name, currency)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO NOTHING`,
			w.id, w.owner, w.name, w.currency,
		)
		if err != nil {
			return fmt.Errorf("seed.Run: insert wallet %s: %w", w.name, err)
		}
	}

	log.Info("demo data seeded", "customers", len(users), "wallets", len(wallets))
	return nil
}
