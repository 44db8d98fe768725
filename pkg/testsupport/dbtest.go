// Package testsupport holds helpers shared by storage tests.
package testsupport

import (
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// SQLiteMemoryDSN returns a shared-cache in-memory DSN unique to name.
func SQLiteMemoryDSN(name string) string {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	return "file:" + name + "?mode=memory&cache=shared&_fk=1"
}

// NewSQLiteMemoryDB opens an in-memory sqlite bun database scoped to the
// test and closed on cleanup.
func NewSQLiteMemoryDB(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", SQLiteMemoryDSN(t.Name()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}
