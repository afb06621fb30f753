package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/revsent/internal/reviews"
)

// Kind identifies an analysis performed on a review.
type Kind string

const (
	KindSentiment Kind = "sentiment"
	KindNouns     Kind = "nouns"
)

// Kinds lists every supported analysis kind.
var Kinds = []Kind{KindSentiment, KindNouns}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	return k == KindSentiment || k == KindNouns
}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q (want sentiment or nouns)", ErrUnknownKind, s)
	}
	return k, nil
}

// Key identifies one cached result.
type Key struct {
	ReviewID int
	Kind     Kind
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s", k.ReviewID, k.Kind)
}

// SentimentLabel is the normalized sentiment of a review.
type SentimentLabel string

const (
	Positive SentimentLabel = "positive"
	Negative SentimentLabel = "negative"
	Neutral  SentimentLabel = "neutral"
)

// SentimentResult is a normalized sentiment classification. Score is nil when
// the classifier did not return a numeric score.
type SentimentResult struct {
	Label SentimentLabel `json:"label" yaml:"label"`
	Score *float64       `json:"score" yaml:"score"`
}

// NounBand is a coarse noun-density level.
type NounBand string

const (
	BandLow    NounBand = "Low"
	BandMedium NounBand = "Medium"
	BandHigh   NounBand = "High"
)

// Emoji returns the indicator shown next to the band.
func (b NounBand) Emoji() string {
	switch b {
	case BandHigh:
		return "🟢"
	case BandMedium:
		return "🟡"
	default:
		return "🔴"
	}
}

// BandFor maps a noun count to its band: more than 15 is High, 6 through 15
// is Medium, anything lower is Low.
func BandFor(count int) NounBand {
	switch {
	case count > 15:
		return BandHigh
	case count >= 6:
		return BandMedium
	default:
		return BandLow
	}
}

// NounCountResult is the number of nouns detected in a review.
type NounCountResult struct {
	Count int      `json:"count" yaml:"count"`
	Band  NounBand `json:"band" yaml:"band"`
}

// Result is the normalized outcome of one analysis. Exactly one of Sentiment
// or Nouns is set, matching Kind.
type Result struct {
	ReviewID  int              `json:"reviewId" yaml:"reviewId"`
	Kind      Kind             `json:"kind" yaml:"kind"`
	Sentiment *SentimentResult `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	Nouns     *NounCountResult `json:"nouns,omitempty" yaml:"nouns,omitempty"`
}

// Request is what the classifier receives for one analysis.
type Request struct {
	Text  string
	Kind  Kind
	Token string
}

// Classifier is the external classification collaborator. It returns the raw
// JSON payload of a successful call.
type Classifier interface {
	Classify(ctx context.Context, req Request) ([]byte, error)
}

// ReviewSource looks reviews up by id.
type ReviewSource interface {
	Get(id int) (reviews.Review, bool)
}

type tokenKey struct{}

// WithToken attaches a caller-supplied bearer credential to ctx. It is passed
// to the classifier on cache misses.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, strings.TrimSpace(token))
}

// TokenFrom returns the credential attached with WithToken, if any.
func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}
