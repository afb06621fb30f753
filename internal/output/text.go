package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dshills/revsent/internal/analysis"
	"github.com/dshills/revsent/internal/session"
)

var (
	positiveColor = lipgloss.Color("#2E7D32")
	negativeColor = lipgloss.Color("#C62828")
	neutralColor  = lipgloss.Color("#757575")

	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(neutralColor)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Bold(true)
)

// TextWriter outputs a human-readable summary.
type TextWriter struct {
	Options Options
}

func (t *TextWriter) Write(w io.Writer, out *session.Outcome) error {
	ew := &errWriter{w: w}

	ew.println(headerStyle.Render(fmt.Sprintf("Review #%d", out.Review.ID)))
	ew.println(strings.Repeat("─", 60))
	for _, line := range wrapText(reviewText(out.Review.Text, t.Options), 72) {
		ew.printf("  %s\n", line)
	}
	ew.println("")

	for _, r := range out.Results {
		switch {
		case r.Sentiment != nil:
			ew.println(sentimentBox(r.Sentiment))
		case r.Nouns != nil:
			ew.printf("Noun density: %s\n", NounLine(r.Nouns))
		}
	}

	ew.println(mutedStyle.Render(footer(out)))
	return ew.err
}

func sentimentBox(s *analysis.SentimentResult) string {
	icon, title := SentimentDisplay(s.Label)
	color := neutralColor
	switch s.Label {
	case analysis.Positive:
		color = positiveColor
	case analysis.Negative:
		color = negativeColor
	}
	return boxStyle.
		BorderForeground(color).
		Foreground(color).
		Render(fmt.Sprintf("%s %s %s", icon, title, FormatScore(s.Score)))
}

func footer(out *session.Outcome) string {
	var cached []string
	for _, r := range out.Results {
		if r.CacheHit {
			cached = append(cached, string(r.Kind))
		}
	}
	s := fmt.Sprintf("Completed in %dms · request %s", out.ElapsedMs, out.RequestID)
	if len(cached) > 0 {
		s += " · cached: " + strings.Join(cached, ", ")
	}
	return s
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

// wrapText splits text into lines of at most width display cells.
func wrapText(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		var current strings.Builder
		for _, word := range words {
			if current.Len() > 0 && lipgloss.Width(current.String())+lipgloss.Width(word)+1 > width {
				lines = append(lines, current.String())
				current.Reset()
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(word)
		}
		if current.Len() > 0 {
			lines = append(lines, current.String())
		}
	}
	return lines
}
