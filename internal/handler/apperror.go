package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrForbidden              = &AppError{http.StatusForbidden, "FORBIDDEN", "You do not have access to this resource"}
	ErrInsufficientFunds      = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient usable balance"}
	ErrPurchasesDisabled      = &AppError{http.StatusUnprocessableEntity, "PURCHASES_DISABLED", "Wallet is not enabled for purchases"}
	ErrWithdrawalsDisabled    = &AppError{http.StatusUnprocessableEntity, "WITHDRAWALS_DISABLED", "Wallet is not enabled for withdrawals"}
	ErrTransactionNotPending  = &AppError{http.StatusUnprocessableEntity, "TRANSACTION_NOT_PENDING", "Only pending transactions can be decided"}
	ErrInvalidDecision        = &AppError{http.StatusBadRequest, "INVALID_DECISION", "Decision must be approved or denied"}
	ErrInvalidAmount          = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrInvalidCurrency        = &AppError{http.StatusBadRequest, "INVALID_CURRENCY", "Invalid currency"}
	ErrInvalidCounterparty    = &AppError{http.StatusBadRequest, "INVALID_COUNTERPARTY", "Invalid counterparty kind"}
	ErrWalletNameTaken        = &AppError{http.StatusConflict, "WALLET_NAME_TAKEN", "A wallet with this name already exists"}
	ErrConflict               = &AppError{http.StatusConflict, "CONFLICT", "Resource was modified concurrently, please retry"}
)
