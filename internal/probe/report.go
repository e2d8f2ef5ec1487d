package probe

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/yumosx/lazy/internal/ansiext"
)

// detailWidth caps the description or error column in text reports.
const detailWidth = 96

// Result is the outcome of one scenario.
type Result struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Passed      bool          `json:"passed"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
}

// Report collects the results of a probe run.
type Report struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	Goroutines int       `json:"goroutines"`
	Iterations int       `json:"iterations"`
	Results    []Result  `json:"results"`
}

func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}
	return n
}

func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

var (
	passStyle = lipgloss.NewStyle().Foreground(charmtone.Guac).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(charmtone.Sriracha).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(charmtone.Squid)
)

// WriteText writes a line per scenario followed by a summary. Colours are
// only used when styled is set. Descriptions and errors are escaped so a
// scenario cannot write control sequences to the terminal, and are cut to
// detailWidth cells.
func (r *Report) WriteText(w io.Writer, styled bool) error {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	width := 0
	for _, res := range r.Results {
		width = max(width, len(res.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n",
		render(dimStyle, "run"),
		r.ID,
		render(dimStyle, fmt.Sprintf("(goroutines=%d iterations=%d)", r.Goroutines, r.Iterations)),
	)
	for _, res := range r.Results {
		status := render(passStyle, "PASS")
		detail := ansiext.Line(res.Description, detailWidth)
		if !res.Passed {
			status = render(failStyle, "FAIL")
			detail = ansiext.Line(res.Error, detailWidth)
		}
		fmt.Fprintf(&b, "%s  %-*s  %8s  %s\n",
			status,
			width, res.Name,
			res.Duration.Round(time.Microsecond),
			render(dimStyle, detail),
		)
	}

	summary := fmt.Sprintf("%d passed, %d failed", r.Passed(), r.Failed())
	if r.Failed() > 0 {
		summary = render(failStyle, summary)
	} else {
		summary = render(passStyle, summary)
	}
	fmt.Fprintln(&b, summary)

	_, err := io.WriteString(w, b.String())
	return err
}
