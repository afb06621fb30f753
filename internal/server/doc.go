// Package server exposes a Session over a small JSON HTTP API built on gin.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/reviews          review count
//	GET  /api/reviews/sample   a random review
//	GET  /api/reviews/:id      one review
//	POST /api/analyze          {"reviewId"?: int, "kinds"?: [...]}
//	GET  /api/cache            cache statistics
//
// An Authorization: Bearer header on /api/analyze is forwarded to the
// classifier as the caller's token. Errors are returned as {"error": msg}
// using session.UserMessage.
package server
