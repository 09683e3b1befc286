// Package tui provides an interactive terminal viewer for the generated
// report. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Report loads the generated report. Citations arrive already
	// resolved inside each insight, so no resolver is needed here.
	Report driving.ReportService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(report driving.ReportService) *Ports {
	return &Ports{
		Report: report,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Report == nil {
		return ErrMissingReportService
	}
	return nil
}
