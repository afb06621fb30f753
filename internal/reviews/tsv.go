package reviews

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadTSV parses tab-separated input with a header row and builds a Store.
func ReadTSV(r io.Reader, opts ...Option) (*Store, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing TSV: %w", err)
	}
	if len(records) == 0 {
		return nil, noReviews("the TSV is empty")
	}
	return Load(records[0], records[1:], opts...)
}

// LoadFile reads a TSV file from disk and builds a Store.
func LoadFile(path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: file does not exist", path)
		}
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	defer f.Close()

	return ReadTSV(f, opts...)
}
