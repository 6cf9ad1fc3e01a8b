// Package diag accumulates generator diagnostics.
//
// Diagnostics are advisory: they describe table gaps and upstream
// inconsistencies so the tables can be grown, and they never stop a run.
package diag

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
)

// Kind classifies a diagnostic.
type Kind string

const (
	// TableGap is a (type, name, role) combination no table covers.
	TableGap Kind = "table-gap"
	// DirectionMismatch is a declared direction the classifier disagrees with.
	DirectionMismatch Kind = "direction-mismatch"
	// Consistency covers public/documented set mismatches and named-variant
	// optional parameter counts.
	Consistency Kind = "consistency"
	// UnhandledMarkup is a documentation element the text renderer does not know.
	UnhandledMarkup Kind = "unhandled-markup"
	// MissingType is a documented parameter without a declared type.
	MissingType Kind = "missing-type"
)

// Diagnostic is one reported inconsistency.
type Diagnostic struct {
	Kind     Kind   `yaml:"kind"`
	Function string `yaml:"function,omitempty"`
	Argument string `yaml:"argument,omitempty"`
	Message  string `yaml:"message"`
}

func (d Diagnostic) String() string {
	s := string(d.Kind)
	if d.Function != "" {
		s += " in " + d.Function
	}
	if d.Argument != "" {
		s += " (" + d.Argument + ")"
	}
	return s + ": " + d.Message
}

// List collects diagnostics in emission order. The zero value is ready to
// use and silent; NewList attaches a logger that prints each diagnostic as
// it is added.
type List struct {
	items []Diagnostic
	log   *zap.SugaredLogger
}

// NewList returns a list that also logs every diagnostic at warn level.
func NewList(log *zap.SugaredLogger) *List {
	return &List{log: log}
}

// Add records d.
func (l *List) Add(d Diagnostic) {
	l.items = append(l.items, d)
	if l.log == nil {
		return
	}
	kv := []interface{}{logger.FieldKind, string(d.Kind)}
	if d.Function != "" {
		kv = append(kv, logger.FieldFunction, d.Function)
	}
	if d.Argument != "" {
		kv = append(kv, logger.FieldArgument, d.Argument)
	}
	l.log.Warnw(d.Message, kv...)
}

// Addf records a diagnostic with a formatted message.
func (l *List) Addf(kind Kind, function, argument, format string, args ...interface{}) {
	l.Add(Diagnostic{
		Kind:     kind,
		Function: function,
		Argument: argument,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Merge appends every diagnostic of other, logging them through l.
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	for _, d := range other.items {
		l.Add(d)
	}
}

// Items returns the diagnostics in emission order.
func (l *List) Items() []Diagnostic {
	if l == nil {
		return nil
	}
	return l.items
}

// Len returns the number of diagnostics.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Count returns how many diagnostics have the given kind.
func (l *List) Count(kind Kind) int {
	n := 0
	for _, d := range l.Items() {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Counts returns per-kind totals.
func (l *List) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, d := range l.Items() {
		counts[d.Kind]++
	}
	return counts
}

type report struct {
	Total       int          `yaml:"total"`
	Diagnostics []Diagnostic `yaml:"diagnostics"`
}

// WriteReport encodes diagnostics as a YAML document.
func WriteReport(w io.Writer, items []Diagnostic) error {
	if items == nil {
		items = []Diagnostic{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report{Total: len(items), Diagnostics: items}); err != nil {
		return errors.Wrap(err, "failed to encode diagnostic report")
	}
	return enc.Close()
}

// WriteReportFile writes the YAML report to path, replacing any previous one.
func WriteReportFile(path string, items []Diagnostic) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create report %s", path)
	}
	if err := WriteReport(f, items); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
