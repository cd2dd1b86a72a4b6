// Package repository implements the SurrealDB data access layer for the
// Tempo API.
//
// The package provides the database-backed implementation of the
// store.CalendarStore contract. Calendars and event copies live in two
// tables:
//
//   - calendar: one record per identity, created on first read
//   - event: one record per (event, participant) pair, carrying the shared
//     logical event id
//
// # Id Allocation
//
// Logical event ids come from a single sequence record (sequence:event).
// The sequence is bumped with an UPSERT before the fan-out commit, so ids
// are monotonic and never reused even when a commit fails or an event is
// deleted.
//
// # Fan-Out Commits
//
// Event creation writes one copy per participant plus the owning calendar
// records as a single AtomicBatch, so a meeting is never half-booked.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax for security
//   - type::thing() for safe record ids built from identities
//   - time-typed fields for start/end comparisons in purge queries
package repository
