package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a monetary amount that is zero, negative, or not a valid decimal.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientFunds indicates a withdrawal amount exceeding the current account balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrStorageUnavailable indicates the durable store could not complete a read or write.
// Not recoverable within a single request; surfaces as a server-side failure.
var ErrStorageUnavailable = errors.New("storage unavailable")
