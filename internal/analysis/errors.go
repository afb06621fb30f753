package analysis

import (
	"errors"
	"fmt"

	"github.com/dshills/revsent/internal/redact"
)

var (
	// ErrUnknownKind is returned for an unsupported analysis kind.
	ErrUnknownKind = errors.New("unknown analysis kind")
	// ErrMalformedPayload is returned when a payload has no usable data.
	ErrMalformedPayload = errors.New("malformed classifier payload")
)

// ClassificationError reports a failed classifier call or an unusable
// payload. Message is human-readable and safe to show to users.
type ClassificationError struct {
	ReviewID int
	Kind     Kind
	Message  string
	Err      error
}

func (e *ClassificationError) Error() string {
	return e.Message
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

func newClassificationError(key Key, err error) *ClassificationError {
	return &ClassificationError{
		ReviewID: key.ReviewID,
		Kind:     key.Kind,
		Message:  redact.Secrets(err.Error()),
		Err:      err,
	}
}

// IsClassificationError reports whether err is or wraps a ClassificationError.
func IsClassificationError(err error) bool {
	var ce *ClassificationError
	return errors.As(err, &ce)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedPayload, fmt.Sprintf(format, args...))
}
