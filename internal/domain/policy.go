package domain

import (
	m "github.com/growthboot/FlakeMonster/internal/model"
)

// ShouldInject decides whether a delay precedes the statement at
// positionIndex within its container, under the given density mode.
//
//   - light: only the first statement of each container.
//   - medium: every statement except return and throw.
//   - hardcore: every statement.
func ShouldInject(mode m.Mode, kind m.StatementKind, positionIndex int) bool {
	switch mode {
	case m.ModeLight:
		return positionIndex == 0
	case m.ModeMedium:
		return kind != m.StatementReturn && kind != m.StatementThrow
	case m.ModeHardcore:
		return true
	}

	return false
}
