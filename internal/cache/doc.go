// Package cache provides an in-memory, process-lifetime memoization cache for
// classification results.
//
// Entries are keyed by any comparable key (the analysis package uses the
// review id plus analysis kind). Once a key is written its value is never
// replaced, expired or evicted, so growth is bounded only by the number of
// distinct keys computed. Hits and misses are counted for reporting through
// [Cache.Stats].
//
// A Cache is an owned object: construct one with [New] and hand it to the
// component that issues classification requests.
package cache
