// Package cli wires together the Cobra command tree for the revsent binary.
//
// It defines the root command and all subcommands (sample, show, analyze,
// serve, models, config, version), binds flags, reads configuration, builds
// the review session, and returns deterministic exit codes.
package cli
