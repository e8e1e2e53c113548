package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyTRY, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Wallet is a named, currency-scoped sub-account. Balance counts all funds
// attributed to the wallet, including deposits still awaiting approval;
// UsableBalance counts only the funds that can be spent right now. The two
// diverge exactly by the total amount of pending movements: a pending
// deposit is in Balance but not yet usable, a pending withdrawal is out of
// UsableBalance but not yet off the total.
type Wallet struct {
	ID                uuid.UUID
	CustomerID        uuid.UUID
	Name              string
	Currency          Currency
	PurchaseEnabled   bool
	WithdrawalEnabled bool
	Balance           decimal.Decimal
	UsableBalance     decimal.Decimal
	Version           int64
	CreatedAt         time.Time
}
