package store

import (
	"context"
	"testing"

	"github.com/condomaster/condomaster-api/internal/database"
	"github.com/condomaster/condomaster-api/internal/gateway"
)

func setupTestGateway(t *testing.T) gateway.Gateway {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return gateway.NewSQL(db, gateway.SQLite, gateway.WithJSONColumns(database.JSONColumns))
}

func mustInsert(t *testing.T, gw gateway.Gateway, table string, row gateway.Row) gateway.Row {
	t.Helper()
	rows, err := gw.Insert(context.Background(), table, row)
	if err != nil {
		t.Fatalf("insert into %s: %v", table, err)
	}
	if len(rows) != 1 {
		t.Fatalf("insert into %s returned %d rows", table, len(rows))
	}
	return rows[0]
}

func countRows(t *testing.T, gw gateway.Gateway, q gateway.Query) int {
	t.Helper()
	rows, err := gw.Select(context.Background(), q)
	if err != nil {
		t.Fatalf("select %s: %v", q.Table, err)
	}
	return len(rows)
}
