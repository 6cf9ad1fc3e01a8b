package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across bindgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldStage     = "stage"

	// Declarations
	FieldFunction = "function"
	FieldArgument = "argument"
	FieldKind     = "kind"
	FieldObject   = "object"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"

	// Files and paths
	FieldFile = "file"
	FieldOp   = "op"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Miner struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewMiner() *Miner {
//	    return &Miner{
//	        logger: logger.ComponentLogger("methods"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	fnLogger := logger.ChildLogger(base, logger.FieldFunction, fn.Name)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
