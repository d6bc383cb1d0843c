package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

func TestShouldInject(t *testing.T) {
	tests := []struct {
		name  string
		mode  m.Mode
		kind  m.StatementKind
		index int
		want  bool
	}{
		{"light first statement", m.ModeLight, m.StatementOther, 0, true},
		{"light second statement", m.ModeLight, m.StatementOther, 1, false},
		{"light first return", m.ModeLight, m.StatementReturn, 0, true},
		{"medium plain statement", m.ModeMedium, m.StatementOther, 3, true},
		{"medium return", m.ModeMedium, m.StatementReturn, 2, false},
		{"medium throw", m.ModeMedium, m.StatementThrow, 0, false},
		{"hardcore plain", m.ModeHardcore, m.StatementOther, 5, true},
		{"hardcore return", m.ModeHardcore, m.StatementReturn, 2, true},
		{"hardcore throw", m.ModeHardcore, m.StatementThrow, 0, true},
		{"unknown mode", m.Mode("chaotic"), m.StatementOther, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ShouldInject(tt.mode, tt.kind, tt.index))
		})
	}
}
