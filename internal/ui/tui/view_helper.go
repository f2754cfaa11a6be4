package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/recur/internal/domain"
	"github.com/aalvaropc/recur/internal/infra/observe"
)

// maxTraceRows caps how many steps the result card shows.
const maxTraceRows = 12

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderComparison(t Theme, run domain.RunArtifact, id string) string {
	c := run.Comparison
	var b strings.Builder

	verdict := t.Pass.Render("AGREE")
	if c.Failed() {
		verdict = t.Fail.Render("FAIL")
	}
	b.WriteString(t.Title.Render(run.ScenarioName))
	b.WriteString("  ")
	b.WriteString(verdict)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Params:      %s\n", c.Params))
	if run.EnvironmentName != "" {
		b.WriteString(fmt.Sprintf("Env:         %s\n", run.EnvironmentName))
	}
	b.WriteString(fmt.Sprintf("Iterative:   %s\n", observe.FormatFloat(c.Iterative)))
	if c.Error != "" {
		b.WriteString(fmt.Sprintf("Closed form: %s\n", clampString(c.Error, 120)))
	} else {
		b.WriteString(fmt.Sprintf("Closed form: %s\n", observe.FormatFloat(c.ClosedForm)))
		b.WriteString(fmt.Sprintf("Abs diff:    %.3g (tolerance %g)\n", c.AbsDiff, c.Tolerance))
	}
	if c.Stationary != nil {
		b.WriteString(fmt.Sprintf("Stationary:  x=%.6g value=%.6g\n", c.Stationary.X, c.Stationary.Value))
	}
	if id != "" {
		b.WriteString(fmt.Sprintf("Run ID:      %s\n", id))
	}

	if len(c.Terms) > 0 {
		b.WriteString("\nDiagnostics:\n")
		for _, term := range c.Terms {
			b.WriteString(fmt.Sprintf("  %s %s\n", term.Label, observe.FormatFloat(term.Value)))
		}
	}

	b.WriteString("\n")
	b.WriteString(renderTrace(c.Steps))

	if len(c.Checks) > 0 {
		b.WriteString("\nChecks:\n")
		for _, ch := range c.Checks {
			status := "FAIL"
			if ch.Passed {
				status = "PASS"
			}
			b.WriteString("  - ")
			b.WriteString(ch.Name)
			b.WriteString(" [")
			b.WriteString(status)
			b.WriteString("] ")
			b.WriteString(clampString(ch.Message, 100))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderTrace lists the steps, eliding the middle of long traces.
func renderTrace(steps []domain.Step) string {
	if len(steps) == 0 {
		return "Trace: (no steps)\n"
	}

	var b strings.Builder
	b.WriteString("Trace:\n")

	write := func(s domain.Step) {
		b.WriteString(fmt.Sprintf("  %d %s\n", s.I, observe.FormatFloat(s.Value)))
	}

	if len(steps) <= maxTraceRows {
		for _, s := range steps {
			write(s)
		}
		return b.String()
	}

	half := maxTraceRows / 2
	for _, s := range steps[:half] {
		write(s)
	}
	b.WriteString(fmt.Sprintf("  … %d more …\n", len(steps)-2*half))
	for _, s := range steps[len(steps)-half:] {
		write(s)
	}
	return b.String()
}
