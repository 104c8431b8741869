package service

import "errors"

var (
	// ErrSourceUnavailable aborts a run when no observation could be fetched.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrStoreUnavailable is returned by reads when no store is configured or reachable.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidDate is returned for a run date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
)
