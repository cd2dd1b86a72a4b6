// Package testdb provides an isolated SurrealDB environment for
// integration tests. Tests using it run real queries against a real
// database instance and are skipped when none is reachable, so the
// default `go test ./...` run stays hermetic.
//
// Usage:
//
//	func TestCalendarRepository(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    repo := repository.NewCalendarRepository(tdb.DB)
//	    ...
//	}
//
// Point TEST_DB_HOST (and optionally TEST_DB_PORT, TEST_DB_USER,
// TEST_DB_PASSWORD) at a running SurrealDB to enable these tests. Each
// TestDB gets a unique namespace, removed again on Close.
package testdb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/slotwise/tempo/api/internal/database"
)

// TestDB holds a connection scoped to a unique namespace.
type TestDB struct {
	DB        database.Database
	Namespace string
	t         *testing.T
}

var (
	counterMu sync.Mutex
	counter   int64
)

func testConfig() (database.Config, bool) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return database.Config{}, false
	}

	cfg := database.Config{
		Host:     host,
		Port:     os.Getenv("TEST_DB_PORT"),
		User:     os.Getenv("TEST_DB_USER"),
		Password: os.Getenv("TEST_DB_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.User == "" {
		cfg.User = "root"
	}
	if cfg.Password == "" {
		cfg.Password = "root"
	}
	return cfg, true
}

func uniqueNamespace() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("tempo_test_%d_%d", time.Now().UnixNano(), counter)
}

// New connects to the test database under a fresh namespace, skipping
// the test when TEST_DB_HOST is not set. Tempo's tables are
// schemaless, so no migrations are applied.
func New(t *testing.T) *TestDB {
	t.Helper()

	cfg, ok := testConfig()
	if !ok {
		t.Skip("TEST_DB_HOST not set; skipping database integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	return &TestDB{
		DB:        db,
		Namespace: cfg.Namespace,
		t:         t,
	}
}

// Close removes the test namespace and closes the connection.
func (tdb *TestDB) Close() {
	if tdb.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = tdb.DB.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE %s", tdb.Namespace), nil)
	_ = tdb.DB.Close()
}

// Ctx returns a context with a timeout suitable for a single test
// operation.
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	_ = cancel
	return ctx
}

// MustExec executes a statement and fails the test on error.
func (tdb *TestDB) MustExec(query string, vars map[string]interface{}) {
	tdb.t.Helper()
	if err := tdb.DB.Execute(tdb.Ctx(), query, vars); err != nil {
		tdb.t.Fatalf("testdb: exec failed: %v\nQuery: %s", err, query)
	}
}
