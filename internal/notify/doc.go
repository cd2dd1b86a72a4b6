// Package notify renders and delivers meeting invitations.
//
// Invitations are RFC 5545 iCalendar documents (METHOD:REQUEST) so any
// mail or calendar client can ingest them. Delivery is best-effort and
// decoupled from the scheduling commit: the OutboxInviter drops one .ics
// file per invitation into a local outbox directory for a relay to pick
// up, and the LogInviter just records the dispatch.
package notify
