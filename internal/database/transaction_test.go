package database

import (
	"context"
	"strings"
	"testing"
)

// recordingDB captures executed queries. It also pins the Database
// interface at compile time.
type recordingDB struct {
	queries []string
	vars    []map[string]interface{}
}

var _ Database = (*recordingDB)(nil)

func (r *recordingDB) Connect(ctx context.Context) error { return nil }
func (r *recordingDB) Close() error                      { return nil }
func (r *recordingDB) Ping(ctx context.Context) error    { return nil }

func (r *recordingDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	r.queries = append(r.queries, query)
	r.vars = append(r.vars, vars)
	return nil, nil
}

func (r *recordingDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	r.queries = append(r.queries, query)
	r.vars = append(r.vars, vars)
	return nil, nil
}

func (r *recordingDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	r.queries = append(r.queries, query)
	r.vars = append(r.vars, vars)
	return nil
}

func TestTxBuilder_NamespacesVariables(t *testing.T) {
	tb := NewTxBuilder()
	tb.Add("CREATE event SET start = $start", map[string]interface{}{"start": "a"})
	tb.Add("CREATE event SET start = $start", map[string]interface{}{"start": "b"})

	query, vars := tb.Build()

	if !strings.HasPrefix(query, "BEGIN TRANSACTION;") {
		t.Errorf("query does not open a transaction:\n%s", query)
	}
	if !strings.HasSuffix(query, "COMMIT TRANSACTION;") {
		t.Errorf("query does not commit:\n%s", query)
	}
	if strings.Contains(query, "$start") {
		t.Errorf("raw variable name survived namespacing:\n%s", query)
	}
	if len(vars) != 2 {
		t.Fatalf("got %d vars, want 2 distinct namespaced vars: %v", len(vars), vars)
	}
}

func TestTxBuilder_EmptyBuild(t *testing.T) {
	query, vars := NewTxBuilder().Build()
	if query != "" || vars != nil {
		t.Errorf("empty builder produced query %q vars %v", query, vars)
	}
}

func TestAtomicBatch_ExecutesAsOneTransaction(t *testing.T) {
	db := &recordingDB{}

	batch := NewAtomicBatch()
	batch.Add("CREATE calendar SET identity = $identity", map[string]interface{}{"identity": "ada@example.com"})
	batch.Add("CREATE calendar SET identity = $identity", map[string]interface{}{"identity": "grace@example.com"})

	if batch.Len() != 2 {
		t.Fatalf("batch.Len() = %d, want 2", batch.Len())
	}
	if err := batch.Execute(context.Background(), db); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(db.queries) != 1 {
		t.Fatalf("batch ran %d queries, want a single transaction", len(db.queries))
	}
	query := db.queries[0]
	if !strings.Contains(query, "BEGIN TRANSACTION;") || !strings.Contains(query, "COMMIT TRANSACTION;") {
		t.Errorf("batch query is not wrapped in a transaction:\n%s", query)
	}
	if got := strings.Count(query, "CREATE calendar"); got != 2 {
		t.Errorf("query contains %d statements, want 2:\n%s", got, query)
	}
}

func TestAtomicBatch_EmptyIsNoop(t *testing.T) {
	db := &recordingDB{}
	if err := NewAtomicBatch().Execute(context.Background(), db); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(db.queries) != 0 {
		t.Errorf("empty batch ran %d queries", len(db.queries))
	}
}
