// Package config loads application configuration from environment
// variables.
//
// Every setting has a default suitable for local development, so a
// bare `tempo-server` starts with an in-memory store and no
// authentication. Validate reports all problems at once rather than
// stopping at the first, so a misconfigured deployment lists
// everything that needs fixing in a single log line.
//
// The surrealdb store backend requires the DB_* connection settings;
// the memory backend ignores them.
package config
