package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fkaradag/digital-wallet/internal/domain"
)

type Claims struct {
	CustomerID uuid.UUID
	Username   string
	Role       domain.Role
}

type tokenClaims struct {
	jwt.RegisteredClaims
	CustomerID string `json:"customer_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
}

func GenerateToken(customerID uuid.UUID, username string, role domain.Role, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		CustomerID: customerID.String(),
		Username:   username,
		Role:       string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("GenerateToken: %w", err)
	}
	return signed, nil
}

func ValidateToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: %w", err)
	}

	tc, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("ValidateToken: invalid token claims")
	}

	customerID, err := uuid.Parse(tc.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: invalid customer_id in token: %w", err)
	}

	role := domain.Role(tc.Role)
	if role != domain.RoleCustomer && role != domain.RoleStaff {
		return nil, fmt.Errorf("ValidateToken: unknown role %q", tc.Role)
	}

	return &Claims{
		CustomerID: customerID,
		Username:   tc.Username,
		Role:       role,
	}, nil
}
