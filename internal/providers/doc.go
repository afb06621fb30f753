// Package providers implements the analysis.Classifier collaborator for the
// supported inference services.
//
// The Hugging Face provider posts {"inputs": text} to a per-kind model
// endpoint with an optional bearer token and returns the raw JSON body.
// Non-success responses become [*StatusError] values whose message is
// "HTTP <status>" followed by the API's error or message field when present.
//
// Retries use a shared helper with exponential back-off and only apply to
// rate limiting and server errors; the default retry count is zero. HTTP
// clients are injected via a field so that tests can redirect calls to local
// httptest servers without making live API requests.
//
// Use [New] to obtain a provider by name.
package providers
