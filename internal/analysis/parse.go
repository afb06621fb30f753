package analysis

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Shape is the top-level layout of a classifier payload.
type Shape int

const (
	// ShapeUnrecognized is anything that is not a non-empty JSON array.
	ShapeUnrecognized Shape = iota
	// ShapeNested is a sequence of sequences, e.g. [[{label, score}, ...]].
	ShapeNested
	// ShapeFlat is a sequence of records, e.g. [{label, score}, ...].
	ShapeFlat
)

func (s Shape) String() string {
	switch s {
	case ShapeNested:
		return "nested"
	case ShapeFlat:
		return "flat"
	default:
		return "unrecognized"
	}
}

// ClassifyShape reports the layout of payload.
func ClassifyShape(payload []byte) Shape {
	if !gjson.ValidBytes(payload) {
		return ShapeUnrecognized
	}
	root := gjson.ParseBytes(payload)
	if !root.IsArray() {
		return ShapeUnrecognized
	}
	items := root.Array()
	if len(items) == 0 {
		return ShapeUnrecognized
	}
	if items[0].IsArray() {
		return ShapeNested
	}
	return ShapeFlat
}

// FirstElement returns the first element of the first level of payload:
// data[0][0] for a nested payload and data[0] for a flat one. The returned
// result does not exist for unrecognized payloads or an empty inner sequence.
func FirstElement(payload []byte) (gjson.Result, Shape) {
	shape := ClassifyShape(payload)
	switch shape {
	case ShapeNested:
		inner := gjson.ParseBytes(payload).Array()[0].Array()
		if len(inner) == 0 {
			return gjson.Result{}, shape
		}
		return inner[0], shape
	case ShapeFlat:
		return gjson.ParseBytes(payload).Array()[0], shape
	default:
		return gjson.Result{}, shape
	}
}

// ParseSentiment extracts a normalized sentiment from a classifier payload.
//
// POSITIVE maps to Positive only with a score above 0.5; NEGATIVE maps to
// Negative whatever the score; everything else, including payloads with no
// usable element, is Neutral.
func ParseSentiment(payload []byte) SentimentResult {
	first, _ := FirstElement(payload)

	label := "NEUTRAL"
	if l := first.Get("label"); l.Type == gjson.String && l.Str != "" {
		label = l.Str
	}

	var score *float64
	if s := first.Get("score"); s.Type == gjson.Number {
		v := s.Float()
		score = &v
	}

	switch {
	case strings.EqualFold(label, "POSITIVE") && score != nil && *score > 0.5:
		return SentimentResult{Label: Positive, Score: score}
	case strings.EqualFold(label, "NEGATIVE"):
		return SentimentResult{Label: Negative, Score: score}
	default:
		return SentimentResult{Label: Neutral, Score: score}
	}
}

// nounTags are the part-of-speech tags counted as nouns.
var nounTags = map[string]bool{"NOUN": true, "PROPN": true}

// ParseNouns counts noun entries in a token-classification payload. Entries
// carry their tag in entity_group (aggregated output) or entity (per token,
// possibly with a B-/I- prefix). A payload that is not a JSON array is
// malformed; an empty array counts zero nouns.
func ParseNouns(payload []byte) (NounCountResult, error) {
	if !gjson.ValidBytes(payload) {
		return NounCountResult{}, malformed("payload is not valid JSON")
	}
	root := gjson.ParseBytes(payload)
	if !root.IsArray() {
		return NounCountResult{}, malformed("expected an array of tokens, got %s", root.Type)
	}

	entries := root.Array()
	if ClassifyShape(payload) == ShapeNested {
		entries = entries[0].Array()
	}

	count := 0
	for _, e := range entries {
		tag := e.Get("entity_group")
		if !tag.Exists() {
			tag = e.Get("entity")
		}
		name := strings.ToUpper(tag.String())
		name = strings.TrimPrefix(strings.TrimPrefix(name, "B-"), "I-")
		if nounTags[name] {
			count++
		}
	}
	return NounCountResult{Count: count, Band: BandFor(count)}, nil
}

func parse(key Key, payload []byte) (*Result, error) {
	result := &Result{ReviewID: key.ReviewID, Kind: key.Kind}
	switch key.Kind {
	case KindSentiment:
		s := ParseSentiment(payload)
		result.Sentiment = &s
	case KindNouns:
		n, err := ParseNouns(payload)
		if err != nil {
			return nil, err
		}
		result.Nouns = &n
	default:
		return nil, ErrUnknownKind
	}
	return result, nil
}
