// Package reviews loads text reviews from tab-separated input and serves
// random and by-id access to them.
//
// The input must carry a header row with a column named "text" (matched
// case-insensitively after trimming). Rows whose text is missing or blank
// are dropped; surviving rows receive sequential ids starting at 0 in input
// order. A [Store] is immutable once built.
package reviews
