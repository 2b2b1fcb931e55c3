package domain

import "errors"

// Typed errors returned by the transfer engine and repositories.
// Every failure is recovered at the service boundary and surfaced as one of
// these kinds; callers match with errors.Is and translate to user-facing copy.
var (
	// ErrInvalidRequest indicates a malformed request (missing accounts,
	// same-account transfer, currency mismatch).
	ErrInvalidRequest = errors.New("invalid transfer request")

	// ErrInvalidAmount indicates a non-positive amount or one with more
	// precision than the currency's minor unit.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNotAuthorized indicates the acting principal does not own the
	// source account.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrNotFound indicates the referenced account does not exist.
	ErrNotFound = errors.New("account not found")

	// ErrInsufficientFunds indicates the source balance cannot cover the
	// amount. Checked pre-flight and re-checked at commit time.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConflict indicates a concurrent modification was detected by the
	// optimistic version check. Safe to retry once with fresh reads.
	ErrConflict = errors.New("account was modified concurrently")

	// ErrTransferFailed indicates the atomic commit could not complete and
	// all applied effects were rolled back.
	ErrTransferFailed = errors.New("transfer failed")
)
