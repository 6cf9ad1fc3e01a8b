package gen

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"

	"github.com/teranos/bindgen/diag"
)

// ProgressEmitter receives run progress for display.
//
// Implementations include:
// - CLIEmitter: terminal output using pterm
// - NopEmitter: silent, for checks and tests
type ProgressEmitter interface {
	// EmitStage announces a pipeline stage.
	EmitStage(stage string, message string)
	// EmitGenerated announces an artifact written to path.
	EmitGenerated(path string)
	// EmitComplete summarizes the diagnostics of the run.
	EmitComplete(counts map[diag.Kind]int)
}

// CLIEmitter prints progress to the terminal using pterm
type CLIEmitter struct {
	verbosity int
}

// NewCLIEmitter creates a CLI progress emitter
func NewCLIEmitter(verbosity int) *CLIEmitter {
	return &CLIEmitter{verbosity: verbosity}
}

// EmitStage prints a stage announcement when verbose
func (e *CLIEmitter) EmitStage(stage string, message string) {
	if e.verbosity >= 1 {
		pterm.Printf("🔄 %s: %s\n", pterm.LightCyan(stage), message)
	}
}

// EmitGenerated prints one line per artifact
func (e *CLIEmitter) EmitGenerated(path string) {
	pterm.Printf("✓ Generated %s\n", path)
}

// EmitComplete prints the diagnostic totals, one line per kind
func (e *CLIEmitter) EmitComplete(counts map[diag.Kind]int) {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		pterm.Success.Println("Generation complete, no diagnostics")
		return
	}

	pterm.Warning.Printf("Generation complete with %s diagnostics\n", pterm.Yellow(fmt.Sprintf("%d", total)))
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		pterm.Printf("  %s: %d\n", k, counts[diag.Kind(k)])
	}
}

// NopEmitter discards progress
type NopEmitter struct{}

func (NopEmitter) EmitStage(string, string) {}

func (NopEmitter) EmitGenerated(string) {}

func (NopEmitter) EmitComplete(map[diag.Kind]int) {}
