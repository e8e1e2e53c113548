package domain

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("wallet does not belong to principal")
	ErrInsufficientFunds     = errors.New("insufficient usable balance")
	ErrPurchasesDisabled     = errors.New("wallet is not enabled for purchases")
	ErrWithdrawalsDisabled   = errors.New("wallet is not enabled for withdrawals")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrInvalidCurrency       = errors.New("invalid currency")
	ErrInvalidCounterparty   = errors.New("invalid counterparty kind")
	ErrWalletNameTaken       = errors.New("wallet name already in use for this customer")
	ErrTransactionNotPending = errors.New("only pending transactions can be decided")
	ErrInvalidDecision       = errors.New("decision must be approved or denied")
	ErrVersionConflict       = errors.New("optimistic lock conflict")
	ErrConflict              = errors.New("concurrent modification, retry the request")
	ErrInvalidCredentials    = errors.New("invalid username or password")
)
