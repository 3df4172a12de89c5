package exception

import "errors"

var (
	ErrExceptionNotFound = errors.New("exception.repository: exception not found")
	ErrUnknownKind       = errors.New("exception.repository: unknown exception kind")
	ErrBuildQuery        = errors.New("exception.repository: failed to build query")
	ErrExecQuery         = errors.New("exception.repository: failed to execute query")
	ErrScanRow           = errors.New("exception.repository: failed to scan row")
)
