// Package analysis classifies reviews through an external classifier and
// memoizes the normalized results.
//
// [Analyzer.GetOrCompute] is the single entry point: it answers from the
// owned result cache when the (review id, kind) pair was computed before and
// otherwise calls the [Classifier], parses its payload, stores the result and
// returns it. Failures are returned as [*ClassificationError] and are never
// cached, so a retry needs no extra bookkeeping.
//
// Classifier payloads have no fixed schema. Parsing first classifies the
// payload shape (a sequence of sequences, a flat sequence, or anything else)
// and then extracts the first usable element. For sentiment an unrecognized
// shape yields a neutral result with no score rather than an error.
package analysis
