// Package service implements the scheduling logic layer for the Tempo API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of calendar store operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Services
//
//   - AvailabilityService: resolves search windows, enforces business-hours
//     policy, and enumerates candidate slots common to a participant set
//   - SchedulerService: drives a scheduling request end to end, from
//     snapshot fetch through fan-out commit and invitation dispatch
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrNoParticipants  = errors.New("participant list is empty")
//	    ErrInvalidDuration = errors.New("duration must be positive")
//	)
//
// # Example Usage
//
//	availability := NewAvailabilityService(AvailabilityServiceConfig{
//	    Store: calendarStore,
//	})
//	scheduler := NewSchedulerService(SchedulerServiceConfig{
//	    Store:        calendarStore,
//	    Availability: availability,
//	    Inviter:      dispatcher,
//	})
//	result, err := scheduler.Schedule(ctx, &request)
package service
