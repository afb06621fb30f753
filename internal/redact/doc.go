// Package redact scrubs credentials from text that leaves the process.
//
// Error detail returned by the inference API is surfaced to users verbatim,
// and request errors are logged; both pass through [Secrets] first. Detection
// uses regex heuristics for Hugging Face access tokens, bearer headers, JWTs
// and generic key/token assignments. [Mask] shortens a known credential for
// log fields.
package redact
