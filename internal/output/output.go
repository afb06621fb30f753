package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/revsent/internal/analysis"
	"github.com/dshills/revsent/internal/session"
)

// DefaultExcerptChars is the review length shown before truncation.
const DefaultExcerptChars = 280

// Writer writes an outcome in a specific format.
type Writer interface {
	Write(w io.Writer, out *session.Outcome) error
}

// Options controls how review text is shown.
type Options struct {
	// ExcerptChars is the number of runes kept when truncating; zero selects
	// DefaultExcerptChars.
	ExcerptChars int
	// Full disables truncation.
	Full bool
}

// Formats lists the supported format names.
var Formats = []string{"text", "json", "yaml", "markdown"}

// GetWriter returns a writer for the specified format.
func GetWriter(format string, opts Options) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{Options: opts}, nil
	case "json":
		return &JSONWriter{}, nil
	case "yaml", "yml":
		return &YAMLWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{Options: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteOutcome writes the outcome to the specified output (file path or stdout).
func WriteOutcome(out *session.Outcome, format, outPath string, opts Options) error {
	writer, err := GetWriter(format, opts)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, out)
}

// Excerpt shortens text to at most limit runes, appending "…" when anything
// was cut. A non-positive limit returns text unchanged.
func Excerpt(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimRight(string(runes[:limit]), " \t\n") + "…"
}

// SentimentDisplay returns the icon and title shown for a sentiment label.
func SentimentDisplay(label analysis.SentimentLabel) (icon, title string) {
	switch label {
	case analysis.Positive:
		return "👍", "Positive"
	case analysis.Negative:
		return "👎", "Negative"
	default:
		return "❓", "Neutral"
	}
}

// FormatScore renders a score to three decimals, or "(—)" when absent.
func FormatScore(score *float64) string {
	if score == nil {
		return "(—)"
	}
	return fmt.Sprintf("(%.3f)", *score)
}

// NounLine renders a noun count as "🟢 High (16 nouns)".
func NounLine(n *analysis.NounCountResult) string {
	unit := "nouns"
	if n.Count == 1 {
		unit = "noun"
	}
	return fmt.Sprintf("%s %s (%d %s)", n.Band.Emoji(), n.Band, n.Count, unit)
}

func reviewText(text string, opts Options) string {
	if opts.Full {
		return text
	}
	limit := opts.ExcerptChars
	if limit == 0 {
		limit = DefaultExcerptChars
	}
	return Excerpt(text, limit)
}
