package db

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/hydrex/internal/domain"
)

// Sentinel errors for engine operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
	ErrBadResponse   = errors.New("db: malformed engine response")
	ErrUnknownDriver = errors.New("db: unknown driver")
)

// Op constants name engine calls for error context.
const (
	OpPing     = "PING"
	OpJSONGet  = "JSON.GET"
	OpFTSearch = "FT.SEARCH"
	OpGet      = "GET _doc"
	OpSearch   = "POST _search"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// NotFound returns an error matching domain.ErrDocumentNotFound.
func NotFound(index, id string) error {
	return fmt.Errorf("%w: %s/%s", domain.ErrDocumentNotFound, index, id)
}
