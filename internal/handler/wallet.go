package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fkaradag/digital-wallet/internal/domain"
	"github.com/fkaradag/digital-wallet/internal/logging"
	"github.com/fkaradag/digital-wallet/internal/service"
)

type walletService interface {
	CreateWallet(ctx context.Context, p domain.Principal, req service.CreateWalletRequest) (*domain.Wallet, error)
	ListWallets(ctx context.Context, p domain.Principal, ownerID *uuid.UUID, currency *domain.Currency) ([]domain.Wallet, error)
}

type transactionLister interface {
	ListWalletTransactions(ctx context.Context, p domain.Principal, walletID uuid.UUID) ([]domain.Transaction, error)
}

type WalletHandler struct {
	wallets walletService
	ledger  transactionLister
}

func NewWalletHandler(wallets walletService, ledger transactionLister) *WalletHandler {
	return &WalletHandler{wallets: wallets, ledger: ledger}
}

type createWalletRequest struct {
	OwnerID           *uuid.UUID `json:"owner_id"`
	Name              string     `json:"name"`
	Currency          string     `json:"currency"`
	PurchaseEnabled   *bool      `json:"purchase_enabled"`
	WithdrawalEnabled *bool      `json:"withdrawal_enabled"`
}

func (r createWalletRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if r.Currency == "" {
		errs = append(errs, FieldError{Field: "currency", Message: "required"})
	} else if !domain.Currency(r.Currency).IsValid() {
		errs = append(errs, FieldError{Field: "currency", Message: "must be TRY, USD, or EUR"})
	}
	return errs
}

type walletDTO struct {
	ID                uuid.UUID       `json:"id"`
	CustomerID        uuid.UUID       `json:"customer_id"`
	Name              string          `json:"name"`
	Currency          string          `json:"currency"`
	PurchaseEnabled   bool            `json:"purchase_enabled"`
	WithdrawalEnabled bool            `json:"withdrawal_enabled"`
	Balance           decimal.Decimal `json:"balance"`
	UsableBalance     decimal.Decimal `json:"usable_balance"`
	CreatedAt         time.Time       `json:"created_at"`
}

func toWalletDTO(w *domain.Wallet) walletDTO {
	return walletDTO{
		ID:                w.ID,
		CustomerID:        w.CustomerID,
		Name:              w.Name,
		Currency:          string(w.Currency),
		PurchaseEnabled:   w.PurchaseEnabled,
		WithdrawalEnabled: w.WithdrawalEnabled,
		Balance:           w.Balance,
		UsableBalance:     w.UsableBalance,
		CreatedAt:         w.CreatedAt,
	}
}

func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, appErr := principalFrom(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req createWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	wallet, err := h.wallets.CreateWallet(r.Context(), p, service.CreateWalletRequest{
		OwnerID:           req.OwnerID,
		Name:              req.Name,
		Currency:          domain.Currency(req.Currency),
		PurchaseEnabled:   req.PurchaseEnabled,
		WithdrawalEnabled: req.WithdrawalEnabled,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create wallet", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toWalletDTO(wallet))
}

func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	p, appErr := principalFrom(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var ownerID *uuid.UUID
	if raw := r.URL.Query().Get("owner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondValidationError(w, []FieldError{{Field: "owner_id", Message: "must be a UUID"}})
			return
		}
		ownerID = &id
	}

	var currency *domain.Currency
	if raw := r.URL.Query().Get("currency"); raw != "" {
		c := domain.Currency(raw)
		currency = &c
	}

	wallets, err := h.wallets.ListWallets(r.Context(), p, ownerID, currency)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list wallets", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]walletDTO, len(wallets))
	for i := range wallets {
		dtos[i] = toWalletDTO(&wallets[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	p, appErr := principalFrom(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	walletID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	txs, err := h.ledger.ListWalletTransactions(r.Context(), p, walletID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list transactions", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, len(txs))
	for i := range txs {
		dtos[i] = toTransactionDTO(&txs[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
