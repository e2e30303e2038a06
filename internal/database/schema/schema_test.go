package schema

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type appliedRow struct {
	version   int32
	appliedAt time.Time
}

// stubConn records executed statements and serves canned rows for the
// applied-versions query. Unused driver.Conn methods come from the
// embedded interface and are never called.
type stubConn struct {
	driver.Conn
	execs   []string
	applied []appliedRow
	execErr error
}

func (c *stubConn) Exec(ctx context.Context, query string, args ...any) error {
	if c.execErr != nil {
		return c.execErr
	}
	c.execs = append(c.execs, strings.Join(strings.Fields(query), " "))
	return nil
}

func (c *stubConn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	return &stubRows{rows: c.applied}, nil
}

type stubRows struct {
	driver.Rows
	rows []appliedRow
	idx  int
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	*dest[0].(*int32) = row.version
	*dest[1].(*time.Time) = row.appliedAt
	return nil
}

func (r *stubRows) Close() error { return nil }
func (r *stubRows) Err() error   { return nil }

var testMigrations = []Migration{
	{Version: 1, Description: "first", Up: "CREATE TABLE one (id UInt32) ENGINE = MergeTree() ORDER BY id", Down: "DROP TABLE one"},
	{Version: 2, Description: "second", Up: "CREATE TABLE two (id UInt32) ENGINE = MergeTree() ORDER BY id", Down: "DROP TABLE two"},
}

func execsContaining(execs []string, fragment string) int {
	count := 0
	for _, q := range execs {
		if strings.Contains(q, fragment) {
			count++
		}
	}
	return count
}

func TestMigrateAppliesPendingInOrder(t *testing.T) {
	conn := &stubConn{}
	migrator := NewMigrator(conn, zap.NewNop())

	err := migrator.Migrate(context.Background(), testMigrations...)
	require.NoError(t, err)

	assert.Equal(t, 1, execsContaining(conn.execs, "schema_migrations ("))
	assert.Equal(t, 2, execsContaining(conn.execs, "INSERT INTO schema_migrations"))

	var ddl []string
	for _, q := range conn.execs {
		if strings.HasPrefix(q, "CREATE TABLE one") || strings.HasPrefix(q, "CREATE TABLE two") {
			ddl = append(ddl, q)
		}
	}
	require.Len(t, ddl, 2)
	assert.Contains(t, ddl[0], "one")
	assert.Contains(t, ddl[1], "two")
}

func TestMigrateSkipsAppliedVersions(t *testing.T) {
	conn := &stubConn{
		applied: []appliedRow{{version: 1, appliedAt: time.Now()}},
	}
	migrator := NewMigrator(conn, zap.NewNop())

	err := migrator.Migrate(context.Background(), testMigrations...)
	require.NoError(t, err)

	assert.Equal(t, 0, execsContaining(conn.execs, "CREATE TABLE one"))
	assert.Equal(t, 1, execsContaining(conn.execs, "CREATE TABLE two"))
	assert.Equal(t, 1, execsContaining(conn.execs, "INSERT INTO schema_migrations"))
}

func TestRollbackRemovesRecord(t *testing.T) {
	conn := &stubConn{}
	migrator := NewMigrator(conn, zap.NewNop())

	err := migrator.Rollback(context.Background(), testMigrations[0])
	require.NoError(t, err)

	assert.Equal(t, 1, execsContaining(conn.execs, "DROP TABLE one"))
	assert.Equal(t, 1, execsContaining(conn.execs, "DELETE FROM schema_migrations"))
}

func TestMigrateSurfacesExecErrors(t *testing.T) {
	conn := &stubConn{execErr: assert.AnError}
	migrator := NewMigrator(conn, zap.NewNop())

	err := migrator.Migrate(context.Background(), testMigrations...)
	assert.Error(t, err)
}
