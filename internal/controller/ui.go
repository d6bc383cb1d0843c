// Package controller provides output adapters for displaying injection,
// restoration and scan results.
package controller

import (
	m "github.com/growthboot/FlakeMonster/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeInject StartMode = iota
	ModeRestore
)

// StartOption is a functional option for the Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode  StartMode
	total int
}

// WithInjectMode sets the UI to injection progress mode.
func WithInjectMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeInject
	}
}

// WithRestoreMode sets the UI to restoration progress mode.
func WithRestoreMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRestore
	}
}

// WithTotal tells the UI how many files the run will process.
func WithTotal(total int) StartOption {
	return func(c *StartConfig) {
		c.total = total
	}
}

// UI defines the interface for displaying run progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for the UI to finish rendering.
	DisplayRunInfo(files int, threads int)
	DisplayFileStarted(path m.Path)
	DisplayFileCompleted(path m.Path, points int, err error)
	DisplayInjectSummary(summary m.InjectSummary)
	DisplayRestoreSummary(summary m.RestoreSummary)
	DisplayScanResults(results []m.FileScanResult) error
	DisplayEstimation(estimates []m.FileEstimate, err error) error
	DisplayWarning(format string, args ...any)
}
