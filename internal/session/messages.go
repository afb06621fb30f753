package session

import (
	"errors"
	"fmt"

	"github.com/dshills/revsent/internal/analysis"
	"github.com/dshills/revsent/internal/reviews"
)

// LoadError reports a failure to read or parse the reviews file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadStore reads the reviews TSV at path.
func LoadStore(path string, opts ...reviews.Option) (*reviews.Store, error) {
	s, err := reviews.LoadFile(path, opts...)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return s, nil
}

// UserMessage returns the message shown to users for err.
func UserMessage(err error) string {
	var (
		le *LoadError
		ce *analysis.ClassificationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &le):
		return "Error loading TSV: " + le.Err.Error()
	case errors.Is(err, reviews.ErrNoReviews), errors.Is(err, reviews.ErrEmptyReview):
		return "No valid review found. Please check your TSV."
	case errors.Is(err, ErrBusy):
		return "An analysis is already in progress. Please wait for it to finish."
	case errors.Is(err, reviews.ErrReviewNotFound):
		return "Review not found."
	case errors.As(err, &ce):
		return "Analysis error: " + ce.Message + ". You may retry, add a token, or wait if rate-limited."
	default:
		return err.Error()
	}
}
