// Package session coordinates review sampling and analysis for one user.
//
// A Session owns the single in-flight guard: while an analysis is outstanding,
// further Analyze calls fail fast with ErrBusy instead of queueing. Cache
// lookups, classifier calls and payload parsing are delegated to an
// analysis.Analyzer.
//
// UserMessage converts errors from this package and its collaborators into
// the short messages shown to users by the CLI and HTTP API.
package session
