package ixdata

import (
	"errors"
	"fmt"
)

// Category is the error taxonomy from spec §7: every error this module
// produces is classified into exactly one of these, so a caller's error
// callback can branch on Is(err, CategoryX) without string-matching
// messages.
type Category int

const (
	// CategoryTransport covers URL-unreachable, non-2xx, and binary
	// retrieval failures of non-Parquet feeds. Routes to the feed's error
	// callback; the load aborts.
	CategoryTransport Category = iota
	// CategoryFormat covers unknown source kind, missing parser, CSV
	// delimiter indeterminate, and JSON parse failure. Routes to the feed's
	// error callback; the load aborts. (Parquet magic absent is a warning,
	// not this category.)
	CategoryFormat
	// CategoryEngine covers SQL query failure, the 10M row hard cap, and
	// geometry decode failure that could not even fall back to the hex
	// sentinel. Every failure of a Parquet/GeoParquet load is reported under
	// this category, its engine init timeout and byte-acquisition failures
	// included. Routes to error; cleanup still runs.
	CategoryEngine
	// CategorySemantic covers a referenced column not found, an append
	// schema mismatch, or an incomplete WHERE clause. These never reach
	// the error callback — they emit a sink warning and the operator
	// returns an empty Table (Select and SubtableByNames keep the source
	// schema; Aggregate, Pivot and Condense return one with no fields),
	// returns its input unchanged (Sort, AddTimeColumns), or, for a
	// mutator, returns nil.
	CategorySemantic
	// CategoryInternal covers worker creation failure and the 500MB
	// memory-estimate threshold — both degrade to a working fallback
	// path rather than failing the load.
	CategoryInternal
)

func (c Category) String() string {
	switch c {
	case CategoryTransport:
		return "transport"
	case CategoryFormat:
		return "format"
	case CategoryEngine:
		return "engine"
	case CategorySemantic:
		return "semantic"
	case CategoryInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per category, so callers can `errors.Is(err,
// ixdata.ErrTransport)` etc. without depending on Category directly.
var (
	ErrTransport = errors.New("ixdata: transport error")
	ErrFormat    = errors.New("ixdata: format error")
	ErrEngine    = errors.New("ixdata: engine error")
	ErrSemantic  = errors.New("ixdata: semantic error")
	ErrInternal  = errors.New("ixdata: internal error")
)

func sentinelFor(c Category) error {
	switch c {
	case CategoryTransport:
		return ErrTransport
	case CategoryFormat:
		return ErrFormat
	case CategoryEngine:
		return ErrEngine
	case CategorySemantic:
		return ErrSemantic
	default:
		return ErrInternal
	}
}

// LoadError wraps an underlying failure with its taxonomy Category,
// unwrapping to both the underlying cause and the category sentinel.
type LoadError struct {
	Category Category
	Source   string
	Cause    error
}

func (e *LoadError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("ixdata: %s error loading %q: %v", e.Category, e.Source, e.Cause)
	}
	return fmt.Sprintf("ixdata: %s error: %v", e.Category, e.Cause)
}

func (e *LoadError) Unwrap() []error {
	return []error{sentinelFor(e.Category), e.Cause}
}

func newLoadError(c Category, source string, cause error) *LoadError {
	return &LoadError{Category: c, Source: source, Cause: cause}
}
