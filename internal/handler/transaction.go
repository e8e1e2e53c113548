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

type ledgerService interface {
	Deposit(ctx context.Context, p domain.Principal, req service.MovementRequest) (*domain.Transaction, error)
	Withdraw(ctx context.Context, p domain.Principal, req service.MovementRequest) (*domain.Transaction, error)
}

type approvalService interface {
	Decide(ctx context.Context, p domain.Principal, transactionID uuid.UUID, target domain.TransactionStatus) (*domain.Transaction, error)
}

type TransactionHandler struct {
	ledger    ledgerService
	approvals approvalService
}

func NewTransactionHandler(ledger ledgerService, approvals approvalService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger, approvals: approvals}
}

type movementRequest struct {
	WalletID        uuid.UUID       `json:"wallet_id"`
	Amount          decimal.Decimal `json:"amount"`
	Counterparty    string          `json:"counterparty_kind"`
	CounterpartyRef string          `json:"counterparty_ref"`
}

func (r movementRequest) Validate() []FieldError {
	var errs []FieldError
	if r.WalletID == uuid.Nil {
		errs = append(errs, FieldError{Field: "wallet_id", Message: "required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	if !domain.CounterpartyKind(r.Counterparty).IsValid() {
		errs = append(errs, FieldError{Field: "counterparty_kind", Message: "must be bank_account or payment_network"})
	}
	if r.CounterpartyRef == "" {
		errs = append(errs, FieldError{Field: "counterparty_ref", Message: "required"})
	}
	return errs
}

type transactionDTO struct {
	ID              uuid.UUID       `json:"id"`
	WalletID        uuid.UUID       `json:"wallet_id"`
	Amount          decimal.Decimal `json:"amount"`
	Kind            string          `json:"kind"`
	Counterparty    string          `json:"counterparty_kind"`
	CounterpartyRef string          `json:"counterparty_ref"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

func toTransactionDTO(t *domain.Transaction) transactionDTO {
	return transactionDTO{
		ID:              t.ID,
		WalletID:        t.WalletID,
		Amount:          t.Amount,
		Kind:            string(t.Kind),
		Counterparty:    string(t.Counterparty),
		CounterpartyRef: t.CounterpartyRef,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.movement(w, r, h.ledger.Deposit)
}

func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.movement(w, r, h.ledger.Withdraw)
}

func (h *TransactionHandler) movement(w http.ResponseWriter, r *http.Request, apply func(context.Context, domain.Principal, service.MovementRequest) (*domain.Transaction, error)) {
	p, appErr := principalFrom(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req movementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	t, err := apply(r.Context(), p, service.MovementRequest{
		WalletID:        req.WalletID,
		Amount:          req.Amount,
		Counterparty:    domain.CounterpartyKind(req.Counterparty),
		CounterpartyRef: req.CounterpartyRef,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("movement failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransactionDTO(t))
}

type decisionRequest struct {
	Status string `json:"status"`
}

func (h *TransactionHandler) Decide(w http.ResponseWriter, r *http.Request) {
	p, appErr := principalFrom(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	transactionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	t, err := h.approvals.Decide(r.Context(), p, transactionID, domain.TransactionStatus(req.Status))
	if err != nil {
		logging.FromContext(r.Context()).Error("decision failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toTransactionDTO(t))
}
