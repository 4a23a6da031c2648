package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantFG  lipgloss.TerminalColor
		wantDim bool
	}{
		{name: "created returns green", status: StatusCreated, wantFG: ColorGreen},
		{name: "updated returns yellow", status: StatusUpdated, wantFG: ColorYellow},
		{name: "unchanged returns faint", status: StatusUnchanged, wantDim: true},
		{name: "dry run returns faint", status: StatusDryRun, wantDim: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
			assert.Equal(t, tt.wantDim, style.GetFaint())
		})
	}
}

func TestStatusStyle_Unknown(t *testing.T) {
	style := StatusStyle("bogus")
	assert.False(t, style.GetFaint())
	assert.False(t, style.GetBold())
}

func TestFormatFileLine(t *testing.T) {
	line := FormatFileLine("control", StatusCreated)
	assert.Contains(t, line, "control")
	assert.Contains(t, line, StatusCreated)

	long := FormatFileLine(strings.Repeat("x", 60), StatusUpdated)
	assert.Contains(t, long, strings.Repeat("x", 60)+"  ")
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("done"), "done")
	assert.Contains(t, FormatCheckmark("done"), "✔")
}
