package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingThreshold is the amount above which a movement requires staff
// approval before it settles. Compared strictly: a movement of exactly 1000
// is approved immediately.
var PendingThreshold = decimal.NewFromInt(1000)

type TransactionKind string

const (
	KindDeposit  TransactionKind = "deposit"
	KindWithdraw TransactionKind = "withdraw"
)

type CounterpartyKind string

const (
	CounterpartyBankAccount    CounterpartyKind = "bank_account"
	CounterpartyPaymentNetwork CounterpartyKind = "payment_network"
)

func (k CounterpartyKind) IsValid() bool {
	return k == CounterpartyBankAccount || k == CounterpartyPaymentNetwork
}

type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusApproved TransactionStatus = "approved"
	StatusDenied   TransactionStatus = "denied"
)

// Transaction records a single money movement on a wallet. Status moves
// pending -> approved|denied exactly once; approved and denied are terminal.
type Transaction struct {
	ID              uuid.UUID
	WalletID        uuid.UUID
	Amount          decimal.Decimal
	Kind            TransactionKind
	Counterparty    CounterpartyKind
	CounterpartyRef string
	Status          TransactionStatus
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}
