package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

type Customer struct {
	ID           uuid.UUID
	Name         string
	Surname      string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the resolved acting identity of a request. Staff may act on
// any customer's wallets; ordinary customers only on their own.
type Principal struct {
	CustomerID uuid.UUID
	Role       Role
}

func (p Principal) IsStaff() bool {
	return p.Role == RoleStaff
}
