// Package store defines the calendar storage contract for the Tempo API
// and provides its in-memory implementation.
//
// The CalendarStore is the single source of truth for "is this person busy
// at time T". It is a dumb repository by design: event creation performs no
// overlap checking, because overlap avoidance is scheduling policy and
// belongs to the caller. That keeps the store testable independent of
// business rules.
//
// # Semantics
//
//   - Reads never fail with "not found": requesting an unknown identity
//     materializes an empty calendar and persists it.
//   - CreateEvent issues ids from a central monotonic sequence and fans one
//     copy of the event out to every named participant atomically.
//   - Calendars are insertion-ordered, not time-ordered; callers that need
//     time order sort explicitly.
//   - Event ids are never reused, even after deletion.
//
// # Implementations
//
// MemoryStore (this package) backs tests, development, and single-process
// deployments. The repository package provides the SurrealDB-backed
// implementation of the same contract.
package store
