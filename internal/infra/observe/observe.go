// Package observe provides recurrence.Observer implementations that write
// evaluator diagnostics to a console stream or a structured logger.
package observe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/aalvaropc/recur/internal/recurrence"
)

// Writer prints "<i> <value>" for steps and "<label> <value>" for terms.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

var _ recurrence.Observer = (*Writer)(nil)

func (o *Writer) Step(i int, value float64) {
	fmt.Fprintf(o.w, "%d %s\n", i, FormatFloat(value))
}

func (o *Writer) Term(label string, value float64) {
	fmt.Fprintf(o.w, "%s %s\n", label, FormatFloat(value))
}

// FormatFloat renders the shortest representation that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Slog emits each observation as a debug record.
type Slog struct {
	log   *slog.Logger
	attrs []any
}

// NewSlog returns an observer logging to l; attrs are added to every record.
func NewSlog(l *slog.Logger, attrs ...any) *Slog {
	return &Slog{log: l, attrs: attrs}
}

var _ recurrence.Observer = (*Slog)(nil)

func (o *Slog) Step(i int, value float64) {
	if !o.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	o.log.Debug("recurrence.step", append([]any{"i", i, "value", value}, o.attrs...)...)
}

func (o *Slog) Term(label string, value float64) {
	if !o.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	o.log.Debug("recurrence.term", append([]any{"label", label, "value", value}, o.attrs...)...)
}
