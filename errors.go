package hydrex

import (
	"github.com/kailas-cloud/hydrex/internal/db"
	"github.com/kailas-cloud/hydrex/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrUnmappedIndex    = domain.ErrUnmappedIndex
	ErrUnmappedClass    = domain.ErrUnmappedClass
	ErrMissingFactory   = domain.ErrMissingFactory
	ErrHydration        = domain.ErrHydration
	ErrDocumentNotFound = domain.ErrDocumentNotFound
	ErrModelType        = domain.ErrModelType
	ErrIndexNotFound    = db.ErrIndexNotFound
	ErrUnknownDriver    = db.ErrUnknownDriver
)

// Typed errors carrying the offending index or domain key.
// Use errors.As() to extract them.
type (
	UnmappedIndexError  = domain.UnmappedIndexError
	UnmappedClassError  = domain.UnmappedClassError
	MissingFactoryError = domain.MissingFactoryError
	HydrationError      = domain.HydrationError
)
