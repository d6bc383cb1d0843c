package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

// TUI implements UI using Bubble Tea for interactive progress display.
// Tabular output (scan previews, estimations) is delegated to the simple
// renderer since tables read better outside an alt screen.
type TUI struct {
	output  io.Writer
	simple  *SimpleUI
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to the command's output.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		output: cmd.OutOrStdout(),
		simple: NewSimpleUI(cmd),
	}
}

// Start launches the progress program in the background.
func (t *TUI) Start(options ...StartOption) error {
	config := StartConfig{}
	for _, option := range options {
		option(&config)
	}

	model := newProgressModel(config)
	t.program = tea.NewProgram(model, tea.WithOutput(t.output))
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

// Close asks the program to quit after rendering the final state.
func (t *TUI) Close() {
	if t.program != nil {
		t.program.Send(closeMsg{})
	}
}

// Wait blocks until the program has finished rendering.
func (t *TUI) Wait() {
	if t.done != nil {
		<-t.done
	}
}

// DisplayRunInfo feeds the file and worker counts into the progress view.
func (t *TUI) DisplayRunInfo(files int, threads int) {
	t.send(runInfoMsg{files: files, threads: threads})
}

// DisplayFileStarted marks a file as in flight.
func (t *TUI) DisplayFileStarted(path m.Path) {
	t.send(fileStartedMsg{path: path})
}

// DisplayFileCompleted records a per-file outcome.
func (t *TUI) DisplayFileCompleted(path m.Path, points int, err error) {
	t.send(fileCompletedMsg{path: path, points: points, err: err})
}

// DisplayInjectSummary shows the final injection report.
func (t *TUI) DisplayInjectSummary(summary m.InjectSummary) {
	t.send(injectSummaryMsg{summary: summary})
}

// DisplayRestoreSummary shows the final restoration report.
func (t *TUI) DisplayRestoreSummary(summary m.RestoreSummary) {
	t.send(restoreSummaryMsg{summary: summary})
}

// DisplayScanResults renders the scan preview table.
func (t *TUI) DisplayScanResults(results []m.FileScanResult) error {
	return t.simple.DisplayScanResults(results)
}

// DisplayEstimation renders the estimation table.
func (t *TUI) DisplayEstimation(estimates []m.FileEstimate, err error) error {
	return t.simple.DisplayEstimation(estimates, err)
}

// DisplayWarning prints a warning outside the progress area.
func (t *TUI) DisplayWarning(format string, args ...any) {
	if t.program != nil {
		t.program.Println(warnStyle.Render(fmt.Sprintf(format, args...)))
		return
	}

	t.simple.DisplayWarning(format, args...)
}

func (t *TUI) send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

var (
	tuiTitleStyle = lipgloss.NewStyle().Bold(true)
	tuiDimStyle   = lipgloss.NewStyle().Faint(true)
)

// progressModel is the Bubble Tea model behind the inject/restore progress
// view: a spinner, a progress bar and the most recent per-file outcomes.
type progressModel struct {
	mode     StartMode
	spinner  spinner.Model
	progress progress.Model
	total    int
	threads  int
	done     int
	points   int
	failures int
	current  m.Path
	recent   []string
	summary  string
	quitting bool
}

const tuiRecentLines = 5

func newProgressModel(config StartConfig) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return progressModel{
		mode:     config.mode,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient()),
		total:    config.total,
	}
}

// Init starts the spinner ticking.
func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

// Update reacts to workflow messages and key presses.
func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runInfoMsg:
		pm.total = msg.files
		pm.threads = msg.threads

		return pm, nil

	case fileStartedMsg:
		pm.current = msg.path

		return pm, nil

	case fileCompletedMsg:
		pm.done++

		switch {
		case msg.err != nil:
			pm.failures++
			pm.recent = pushRecent(pm.recent, fmt.Sprintf("skip %s: %v", msg.path, msg.err))
		case msg.points > 0:
			pm.points += msg.points
			pm.recent = pushRecent(pm.recent, fmt.Sprintf("%s: %d delay(s)", msg.path, msg.points))
		}

		return pm, nil

	case injectSummaryMsg:
		if msg.summary.Points == 0 {
			pm.summary = "No injection points found; nothing written"
		} else {
			pm.summary = fmt.Sprintf("Injected %d delay(s) into %d file(s); manifest at %s",
				msg.summary.Points, msg.summary.Files, msg.summary.ManifestPath)
		}

		return pm, nil

	case restoreSummaryMsg:
		pm.summary = fmt.Sprintf("Restored %d file(s), removed %d line(s)",
			msg.summary.Files, msg.summary.LinesRemoved)

		return pm, nil

	case closeMsg:
		pm.quitting = true

		return pm, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			pm.quitting = true

			return pm, tea.Quit
		}

		return pm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd
	}

	return pm, nil
}

// View renders the progress screen.
func (pm progressModel) View() string {
	title := "Injecting delays"
	if pm.mode == ModeRestore {
		title = "Restoring files"
	}

	out := tuiTitleStyle.Render(title) + "\n\n"

	ratio := 0.0
	if pm.total > 0 {
		ratio = float64(pm.done) / float64(pm.total)
	}

	out += pm.progress.ViewAs(ratio) + "\n"
	out += fmt.Sprintf("%s %d/%d files", pm.spinner.View(), pm.done, pm.total)

	if pm.current != "" && !pm.quitting {
		out += tuiDimStyle.Render(fmt.Sprintf("  %s", pm.current))
	}

	out += "\n"

	for _, line := range pm.recent {
		out += tuiDimStyle.Render(line) + "\n"
	}

	if pm.summary != "" {
		out += "\n" + pm.summary + "\n"
	}

	return out
}

func pushRecent(recent []string, line string) []string {
	recent = append(recent, line)
	if len(recent) > tuiRecentLines {
		recent = recent[len(recent)-tuiRecentLines:]
	}

	return recent
}
