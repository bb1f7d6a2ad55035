package smoke

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Results accumulates test names by outcome and echoes each one as it is
// recorded. It is not safe for concurrent use.
type Results struct {
	Passed  []string
	Failed  []string
	Skipped []string

	out    io.Writer
	passSt lipgloss.Style
	failSt lipgloss.Style
	skipSt lipgloss.Style
}

func NewResults(out io.Writer) *Results {
	if out == nil {
		out = os.Stdout
	}
	r := lipgloss.NewRenderer(out)
	return &Results{
		out:    out,
		passSt: r.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		failSt: r.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		skipSt: r.NewStyle().Foreground(lipgloss.Color("#FFC107")),
	}
}

func (r *Results) Pass(name string) {
	r.Passed = append(r.Passed, name)
	fmt.Fprintln(r.out, r.passSt.Render("✓ "+name))
}

func (r *Results) Fail(name string, err error) {
	r.Failed = append(r.Failed, name)
	msg := "✗ " + name
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(r.out, r.failSt.Render(msg))
}

func (r *Results) Skip(name, reason string) {
	r.Skipped = append(r.Skipped, name)
	fmt.Fprintln(r.out, r.skipSt.Render("- "+name+" (skipped: "+reason+")"))
}

func (r *Results) OK() bool { return len(r.Failed) == 0 }

// Summary prints the totals and, when anything failed, the failed names.
func (r *Results) Summary() {
	line := fmt.Sprintf("passed=%d failed=%d skipped=%d", len(r.Passed), len(r.Failed), len(r.Skipped))
	if r.OK() {
		fmt.Fprintln(r.out, r.passSt.Render(line))
		return
	}
	fmt.Fprintln(r.out, r.failSt.Render(line))
	fmt.Fprintln(r.out, r.failSt.Render("failed: "+strings.Join(r.Failed, ", ")))
}
