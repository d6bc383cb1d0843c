package controller

import (
	m "github.com/growthboot/FlakeMonster/internal/model"
)

// Messages the workflow pushes into the running TUI program.

type runInfoMsg struct {
	files   int
	threads int
}

type fileStartedMsg struct {
	path m.Path
}

type fileCompletedMsg struct {
	path   m.Path
	points int
	err    error
}

type injectSummaryMsg struct {
	summary m.InjectSummary
}

type restoreSummaryMsg struct {
	summary m.RestoreSummary
}

type closeMsg struct{}
