package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fkaradag/digital-wallet/internal/domain"
)

func TestCanAccess(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	wallet := &domain.Wallet{ID: uuid.New(), CustomerID: owner}

	tests := []struct {
		name      string
		principal domain.Principal
		want      bool
	}{
		{
			name:      "owner can access own wallet",
			principal: domain.Principal{CustomerID: owner, Role: domain.RoleCustomer},
			want:      true,
		},
		{
			name:      "other customer cannot access",
			principal: domain.Principal{CustomerID: stranger, Role: domain.RoleCustomer},
			want:      false,
		},
		{
			name:      "staff can access any wallet",
			principal: domain.Principal{CustomerID: stranger, Role: domain.RoleStaff},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(wallet, tt.principal))
		})
	}
}

func TestResolveOwner(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	t.Run("staff with explicit owner gets that owner", func(t *testing.T) {
		p := domain.Principal{CustomerID: self, Role: domain.RoleStaff}
		assert.Equal(t, other, ResolveOwner(&other, p))
	})

	t.Run("staff without explicit owner gets self", func(t *testing.T) {
		p := domain.Principal{CustomerID: self, Role: domain.RoleStaff}
		assert.Equal(t, self, ResolveOwner(nil, p))
	})

	t.Run("customer requesting another owner is pinned to self", func(t *testing.T) {
		p := domain.Principal{CustomerID: self, Role: domain.RoleCustomer}
		assert.Equal(t, self, ResolveOwner(&other, p))
	})

	t.Run("customer without explicit owner gets self", func(t *testing.T) {
		p := domain.Principal{CustomerID: self, Role: domain.RoleCustomer}
		assert.Equal(t, self, ResolveOwner(nil, p))
	})
}
