// Package errors provides error handling for bindgen.
//
// This package re-exports github.com/cockroachdb/errors so that every
// package in the generator wraps, annotates and inspects errors the same way:
//
//	// Wrap with context
//	if err := readIndex(path); err != nil {
//	    return errors.Wrapf(err, "failed to read %s", path)
//	}
//
//	// Add hints for the person maintaining the tables
//	return errors.WithHint(err, "add the type to tables.toml")
//
// Only run-terminating conditions travel as errors. Gaps in the lookup
// tables and other per-declaration problems are diagnostics (see package diag).
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
)

// Hints for the person running the generator
var (
	WithHint  = crdb.WithHint
	WithHintf = crdb.WithHintf
)

// Error inspection
var (
	Is           = crdb.Is
	UnwrapAll    = crdb.UnwrapAll
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Assertions
var (
	AssertionFailedf    = crdb.AssertionFailedf
	IsAssertionFailure  = crdb.IsAssertionFailure
	HasAssertionFailure = crdb.HasAssertionFailure
)

// Sentinel errors. Wrap them with Wrap/Wrapf to add context while keeping
// them detectable with Is.
var (
	// ErrMissingInput indicates a required input file is absent or unreadable
	ErrMissingInput = New("missing input")

	// ErrInvalidTables indicates the static configuration tables are inconsistent
	ErrInvalidTables = New("invalid tables")

	// ErrOutOfDate indicates generated artifacts differ from a fresh regeneration
	ErrOutOfDate = New("generated artifacts are out of date")
)

// IsMissingInputError checks if an error is or wraps ErrMissingInput
func IsMissingInputError(err error) bool {
	return err != nil && Is(err, ErrMissingInput)
}

// WrapMissingInput marks err as a missing-input failure for path
func WrapMissingInput(err error, path string) error {
	return Wrapf(Wrap(ErrMissingInput, err.Error()), "cannot read %s", path)
}

// NewInvalidTablesError creates an invalid-tables error with a formatted message
func NewInvalidTablesError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidTables, Newf(format, args...).Error())
}
