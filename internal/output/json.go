package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/revsent/internal/session"
)

// JSONWriter outputs the full outcome as JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, out *session.Outcome) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
