package reviews

import (
	"errors"
	"math/rand/v2"
	"strings"
)

// TextColumn is the header name that holds review text.
const TextColumn = "text"

var (
	// ErrNoReviews is returned when the input has no text column or no usable rows.
	ErrNoReviews = errors.New("no reviews found")
	// ErrEmptyReview is returned when a sampled review is blank after trimming.
	ErrEmptyReview = errors.New("sampled review is empty")
	// ErrReviewNotFound is returned for an unknown review id.
	ErrReviewNotFound = errors.New("review not found")
)

// Review is one text record loaded from the input.
type Review struct {
	ID   int    `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Store is an ordered, read-only collection of reviews.
type Store struct {
	reviews []Review
	intn    func(n int) int
}

// Option configures a Store.
type Option func(*Store)

// WithRand makes Sample draw from r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) {
		s.intn = r.IntN
	}
}

// Load builds a Store from a header row and data rows.
func Load(header []string, rows [][]string, opts ...Option) (*Store, error) {
	col := textColumn(header)
	if col == -1 {
		return nil, noReviews("ensure the TSV has a 'text' column")
	}

	s := &Store{intn: rand.IntN}
	for _, opt := range opts {
		opt(s)
	}
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[col])
		if text == "" {
			continue
		}
		s.reviews = append(s.reviews, Review{ID: len(s.reviews), Text: text})
	}
	if len(s.reviews) == 0 {
		return nil, noReviews("ensure the TSV has a 'text' column with non-empty rows")
	}
	return s, nil
}

func textColumn(header []string) int {
	for i, h := range header {
		// A UTF-8 BOM on the first header cell is common in exported files.
		h = strings.TrimPrefix(h, "\ufeff")
		if strings.EqualFold(strings.TrimSpace(h), TextColumn) {
			return i
		}
	}
	return -1
}

func noReviews(hint string) error {
	return &loadError{hint: hint}
}

type loadError struct {
	hint string
}

func (e *loadError) Error() string { return ErrNoReviews.Error() + ": " + e.hint }

func (e *loadError) Unwrap() error { return ErrNoReviews }

// Len returns the number of reviews.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.reviews)
}

// All returns a copy of every review in load order.
func (s *Store) All() []Review {
	if s == nil {
		return nil
	}
	out := make([]Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

// Sample returns a uniformly random review. It reports false only when the
// store is empty.
func (s *Store) Sample() (Review, bool) {
	if s.Len() == 0 {
		return Review{}, false
	}
	return s.reviews[s.intn(len(s.reviews))], true
}

// Get returns the review with the given id.
func (s *Store) Get(id int) (Review, bool) {
	if id < 0 || id >= s.Len() {
		return Review{}, false
	}
	return s.reviews[id], true
}
