// Package output formats analysis outcomes for display or machine consumption.
//
// Four formats are supported:
//   - text:     styled terminal output (default)
//   - json:     the full outcome as indented JSON
//   - yaml:     the full outcome as YAML
//   - markdown: a summary table suitable for notes or issues
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*session.Outcome]. [WriteOutcome]
// handles destination selection.
package output
