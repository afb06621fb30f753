package output

import (
	"fmt"
	"io"

	"github.com/dshills/revsent/internal/session"
	"gopkg.in/yaml.v3"
)

// YAMLWriter outputs the full outcome as YAML.
type YAMLWriter struct{}

func (y *YAMLWriter) Write(w io.Writer, out *session.Outcome) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("writing YAML: %w", err)
	}
	return enc.Close()
}
