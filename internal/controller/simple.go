package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

var (
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// SimpleUI implements UI using plain line output on the cobra command.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// Wait is a no-op for the simple UI; output is synchronous.
func (s *SimpleUI) Wait() {

}

// DisplayRunInfo shows how many files the run covers and with how many workers.
func (s *SimpleUI) DisplayRunInfo(files int, threads int) {
	s.printf("Processing %d file(s) with %d worker(s)\n", files, threads)
}

// DisplayFileStarted is silent in simple mode; completion lines carry the data.
func (s *SimpleUI) DisplayFileStarted(_ m.Path) {

}

// DisplayFileCompleted prints the per-file outcome.
func (s *SimpleUI) DisplayFileCompleted(path m.Path, points int, err error) {
	if err != nil {
		s.printf("%s %s: %v\n", errorStyle.Render("skip"), path, err)
		return
	}

	if points == 0 {
		return
	}

	s.printf("%s %s: %d delay(s)\n", successStyle.Render("ok"), path, points)
}

// DisplayInjectSummary prints the final injection report.
func (s *SimpleUI) DisplayInjectSummary(summary m.InjectSummary) {
	if summary.Points == 0 {
		s.printf("No injection points found; nothing written\n")
		return
	}

	s.printf("Injected %d delay(s) into %d file(s) (mode %s, seed %d)\n",
		summary.Points, summary.Files, summary.Mode, summary.Seed)
	s.printf("Manifest written to %s\n", summary.ManifestPath)

	if summary.Skipped > 0 {
		s.printf("%s\n", warnStyle.Render(fmt.Sprintf("%d file(s) skipped (parse failures)", summary.Skipped)))
	}
}

// DisplayRestoreSummary prints the final restoration report.
func (s *SimpleUI) DisplayRestoreSummary(summary m.RestoreSummary) {
	source := "recovery sweep"
	if summary.UsedManifest {
		source = "manifest"
	}

	s.printf("Restored %d file(s), removed %d line(s) (%s)\n",
		summary.Files, summary.LinesRemoved, source)

	if summary.Warnings > 0 {
		s.printf("%s\n", warnStyle.Render(fmt.Sprintf("%d file(s) were modified after injection", summary.Warnings)))
	}
}

// DisplayScanResults renders the would-be-deleted lines per file.
func (s *SimpleUI) DisplayScanResults(results []m.FileScanResult) error {
	total := 0

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Line", "Reason", "Content"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, result := range results {
		for _, match := range result.Matches {
			table.Append([]string{
				string(result.Path),
				fmt.Sprintf("%d", match.LineNumber),
				string(match.Reason),
				match.LineContent,
			})

			total++
		}
	}

	if total == 0 {
		s.printf("No injected material found\n")
		return nil
	}

	table.Render()
	s.printf("\n%s\n%d line(s) would be removed\n", tableBuffer.String(), total)

	return nil
}

// DisplayEstimation renders per-file injection point counts.
func (s *SimpleUI) DisplayEstimation(estimates []m.FileEstimate, err error) error {
	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	sort.Slice(estimates, func(i, j int) bool { return estimates[i].Path < estimates[j].Path })

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Injection Points"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, estimate := range estimates {
		table.Append([]string{string(estimate.Path), fmt.Sprintf("%d", estimate.Points)})
		total += estimate.Points
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(estimates)),
		fmt.Sprintf("%d", total),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayWarning prints a styled warning line.
func (s *SimpleUI) DisplayWarning(format string, args ...any) {
	s.printf("%s\n", warnStyle.Render(fmt.Sprintf(format, args...)))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
