package handler

import (
	"net/http"

	"github.com/fkaradag/digital-wallet/internal/auth"
	"github.com/fkaradag/digital-wallet/internal/domain"
)

func principalFrom(r *http.Request) (domain.Principal, *AppError) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		return domain.Principal{}, ErrMissingToken
	}
	return p, nil
}
