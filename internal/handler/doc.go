// Package handler implements HTTP request handlers for the Tempo API.
//
// The handler package translates HTTP requests into service calls and
// service results into JSON responses. Handlers contain no scheduling
// logic; they validate request shape, delegate, and map errors.
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts service dependencies
//   - Methods match http.HandlerFunc and are registered on the mux with
//     "METHOD /path" patterns
//   - Input decoding and field validation happen before any service call
//   - Service errors are mapped centrally by MapServiceError
//
// # Response Format
//
// Successful responses wrap payloads in a data envelope:
//
//	{"data": {...}, "_links": {"self": "/v1/..."}}
//
// Errors use RFC 9457 Problem Details with application/problem+json.
package handler
