package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/revsent/internal/session"
)

// MarkdownWriter outputs a markdown summary table.
type MarkdownWriter struct {
	Options Options
}

func (m *MarkdownWriter) Write(w io.Writer, out *session.Outcome) error {
	ew := &errWriter{w: w}

	ew.printf("## Review #%d\n\n", out.Review.ID)
	text := reviewText(out.Review.Text, m.Options)
	ew.printf("> %s\n\n", strings.ReplaceAll(text, "\n", "\n> "))

	ew.println("| Analysis | Result | Cached |")
	ew.println("|----------|--------|--------|")
	for _, r := range out.Results {
		var result string
		switch {
		case r.Sentiment != nil:
			icon, title := SentimentDisplay(r.Sentiment.Label)
			result = fmt.Sprintf("%s %s %s", icon, title, FormatScore(r.Sentiment.Score))
		case r.Nouns != nil:
			result = NounLine(r.Nouns)
		}
		cached := "no"
		if r.CacheHit {
			cached = "yes"
		}
		ew.printf("| %s | %s | %s |\n", r.Kind, result, cached)
	}

	ew.printf("\n*Completed in %dms (request `%s`)*\n", out.ElapsedMs, out.RequestID)
	return ew.err
}
