// Package middleware provides HTTP middleware for the Tempo API.
//
// The middleware package contains reusable components for request
// processing, applied to the mux with Chain:
//
//	handler := middleware.Chain(mux,
//		middleware.RequestID,
//		middleware.Logger,
//		middleware.Recovery,
//		middleware.CORS(origins),
//		middleware.APIKey(hash),
//		middleware.RateLimit(limiter),
//		middleware.Compress,
//	)
//
// # Authentication
//
// APIKey validates a bearer token against a bcrypt hash from
// configuration. An empty hash disables authentication, which is the
// default for local development.
//
// # Rate Limiting
//
// RateLimit applies token bucket rate limiting keyed by client IP.
//
// # Context Values
//
// RequestID stores a per-request identifier in the context, accessible
// via GetRequestID.
package middleware
