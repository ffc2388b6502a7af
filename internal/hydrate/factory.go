package hydrate

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/kailas-cloud/hydrex/internal/domain/mapping"
)

var errFractionalInt = errors.New("fractional number for integer field")

// Factory builds a domain object from a raw document payload.
type Factory func(data map[string]any) (any, error)

// Factories maps canonical domain keys to their factories.
type Factories struct {
	mu    sync.RWMutex
	byKey map[string]Factory
}

// NewFactories creates an empty factory table.
func NewFactories() *Factories {
	return &Factories{byKey: make(map[string]Factory)}
}

// Register sets the factory for domainKey, replacing any previous one.
func (f *Factories) Register(domainKey string, fn Factory) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byKey[mapping.Canonical(domainKey)] = fn
}

// Lookup returns the factory registered for domainKey.
func (f *Factories) Lookup(domainKey string) (Factory, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	fn, ok := f.byKey[mapping.Canonical(domainKey)]
	return fn, ok
}

// DecodeFactory returns a Factory decoding the payload into a T.
// Field names follow `json` struct tags; RFC 3339 strings decode into time.Time.
// Numbers with a fractional part are rejected for integer fields.
func DecodeFactory[T any]() Factory {
	return func(data map[string]any) (any, error) {
		var out T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:  &out,
			TagName: "json",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeHookFunc(time.RFC3339),
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.DecodeHookFuncKind(rejectFractionalInt),
			),
		})
		if err != nil {
			return nil, fmt.Errorf("new decoder for %T: %w", out, err)
		}
		if err := dec.Decode(data); err != nil {
			return nil, fmt.Errorf("decode %T: %w", out, err)
		}
		return out, nil
	}
}

// rejectFractionalInt stops mapstructure from truncating 42.7 into 42.
func rejectFractionalInt(from, to reflect.Kind, data any) (any, error) {
	if from != reflect.Float32 && from != reflect.Float64 {
		return data, nil
	}
	switch to {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%w: %v into %s", errFractionalInt, f, to)
	}
	return data, nil
}
