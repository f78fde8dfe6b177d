package domain

import "errors"

var (
	// ErrValidation marks a missing or malformed required field. State is left unchanged.
	ErrValidation = errors.New("validation failed")

	// ErrLedgerLocked is returned when the backing file is held by another program.
	// The caller keeps its cart so the user can simply try again.
	ErrLedgerLocked = errors.New("order ledger is locked by another program, close it and try again")

	// ErrStorage wraps any other I/O failure of a backing store.
	ErrStorage = errors.New("storage error")

	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidTransition = errors.New("invalid login transition")
	ErrForbidden         = errors.New("access forbidden")
	ErrNoIdentity        = errors.New("not logged in")
	ErrNoData            = errors.New("no data yet")
)
