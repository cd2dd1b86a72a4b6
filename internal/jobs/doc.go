// Package jobs implements background job processing for the Tempo API.
//
// The jobs package contains tasks that run independently of HTTP request
// handling.
//
// # Job Types
//
// Available background jobs:
//
//   - InviteDispatcher: async invitation delivery, decoupling the
//     scheduling commit from notification I/O
//   - RetentionJob: cron-scheduled purge of long-ended event copies
//
// # Lifecycle
//
// Jobs expose Start and Stop and are wired in the server's main. Stop is
// graceful: the invite dispatcher flushes its queue before returning.
//
// # Error Handling
//
// Jobs log errors but don't crash the application.
package jobs
