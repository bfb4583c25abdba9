package templates

import (
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/uhpc/internal/util"
)

// writer collects the first write error so rendering code stays linear.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// text writes escaped text.
func (w *writer) text(s string) {
	w.raw("%s", templ.EscapeString(s))
}

func (w *writer) row(label, value string) {
	w.raw("<tr><th>")
	w.text(label)
	w.raw("</th><td>")
	w.text(value)
	w.raw("</td></tr>\n")
}

func reportURL(preset string) templ.SafeURL {
	return templ.URL("/report?preset=" + preset)
}

func statusClass(status string) string {
	switch status {
	case "pass", "excellent":
		return "ok"
	case "extrapolated", "good":
		return "warn"
	default:
		return "bad"
	}
}

func days(d float64) string { return util.FormatDays(d) }
