// Package model defines domain entities and data structures for the Tempo API.
//
// The model package contains the calendar and meeting domain objects, the
// interval arithmetic they share, request/response types, and error
// definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Event: a titled time interval [Start, End) copied into each
//     participant's calendar under a shared id
//   - MeetingRequest: a request to schedule a meeting for a participant set
//   - ScheduleResult: the terminal outcome of a scheduling request,
//     either scheduled or no-slot-found
//
// # Interval Semantics
//
// All intervals are half-open. Two events overlap iff
//
//	a.Start < b.End && b.Start < a.End
//
// which is the single predicate used for both conflict detection and slot
// scanning. FreeSlots implements the single-calendar availability scan on
// top of it.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
