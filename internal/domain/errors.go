package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmappedIndex signals an index name with no registered domain key.
	ErrUnmappedIndex = errors.New("unmapped index")
	// ErrUnmappedClass signals a domain key that matches no registered index.
	ErrUnmappedClass = errors.New("unmapped domain key")
	// ErrMissingFactory signals a resolved domain key without a hydration factory.
	ErrMissingFactory = errors.New("missing factory")
	// ErrHydration signals a factory that failed on the given payload.
	ErrHydration = errors.New("hydration failed")
	// ErrDocumentNotFound signals a document absent from the search engine.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrModelType signals a hydrated model of an unexpected Go type.
	ErrModelType = errors.New("unexpected model type")
)

// UnmappedIndexError wraps ErrUnmappedIndex with the offending index name.
type UnmappedIndexError struct {
	Index string
}

func (e *UnmappedIndexError) Error() string {
	return fmt.Sprintf("%s: no domain key registered for index %q", ErrUnmappedIndex, e.Index)
}

func (e *UnmappedIndexError) Unwrap() error { return ErrUnmappedIndex }

// UnmappedClassError wraps ErrUnmappedClass with the offending domain key.
type UnmappedClassError struct {
	DomainKey string
}

func (e *UnmappedClassError) Error() string {
	return fmt.Sprintf("%s: no index registered for domain key %q", ErrUnmappedClass, e.DomainKey)
}

func (e *UnmappedClassError) Unwrap() error { return ErrUnmappedClass }

// MissingFactoryError wraps ErrMissingFactory with the index and its domain key.
type MissingFactoryError struct {
	Index     string
	DomainKey string
}

func (e *MissingFactoryError) Error() string {
	return fmt.Sprintf("%s: domain key %q (index %q) has no factory", ErrMissingFactory, e.DomainKey, e.Index)
}

func (e *MissingFactoryError) Unwrap() error { return ErrMissingFactory }

// HydrationError wraps ErrHydration and the factory's own failure.
type HydrationError struct {
	Index     string
	DomainKey string
	Err       error
}

func (e *HydrationError) Error() string {
	return fmt.Sprintf("%s: domain key %q (index %q): %v", ErrHydration, e.DomainKey, e.Index, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *HydrationError) Unwrap() []error { return []error{ErrHydration, e.Err} }
