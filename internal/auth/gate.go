package auth

import (
	"github.com/google/uuid"

	"github.com/fkaradag/digital-wallet/internal/domain"
)

// CanAccess reports whether the principal may read or move money on the
// wallet. Staff may touch any wallet; customers only their own. Callers must
// resolve the wallet first so that a missing wallet surfaces as not-found
// rather than as an authorization failure.
func CanAccess(w *domain.Wallet, p domain.Principal) bool {
	if p.IsStaff() {
		return true
	}
	return w.CustomerID == p.CustomerID
}

// ResolveOwner picks the owner a wallet operation acts on. Staff may name an
// explicit owner; for everyone else the request is pinned to the principal's
// own identity regardless of what was asked for.
func ResolveOwner(requested *uuid.UUID, p domain.Principal) uuid.UUID {
	if p.IsStaff() && requested != nil {
		return *requested
	}
	return p.CustomerID
}
