package storage

import "errors"

// Error description
const (
	ErrExecuteStatement = "failed to execute statement"
	ErrExecuteQuery     = "failed to execute query"
	ErrScanData         = "failed to scan data"
)

var (
	ErrInvalidStatus  = errors.New("invalid tracking status")
	ErrUnknownStatus  = errors.New("unexpected tracking status in Redis")
	ErrUnknownKind    = errors.New("unknown event kind")
	ErrMarketNotFound = errors.New("market not tracked")
)
