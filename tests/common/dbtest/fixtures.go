//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func SeedInventory(t *testing.T, db DBLike, productID string, stock int) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO inventory (product_id, stock, updated_at) VALUES ($1, $2, now()) "+
			"ON CONFLICT (product_id) DO UPDATE SET stock = EXCLUDED.stock, version = inventory.version + 1, updated_at = now()",
		productID, stock)
	require.NoError(t, err)
}

func GetStock(t *testing.T, db DBLike, productID string) int {
	t.Helper()

	var stock int
	err := db.QueryRow(context.Background(), "SELECT stock FROM inventory WHERE product_id = $1", productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func CountOrders(t *testing.T, db DBLike, productID string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM production_orders WHERE product_id = $1", productID).Scan(&n)
	require.NoError(t, err)
	return n
}

// SeedEvent creates an event whose participants field is absent (NULL).
func SeedEvent(t *testing.T, db DBLike, eventID, title string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO events (id, title) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING", eventID, title)
	require.NoError(t, err)
}

// SeedProfile inserts into "specialists" or "users".
func SeedProfile(t *testing.T, db DBLike, table, id, displayName, email string) {
	t.Helper()

	if table != "specialists" && table != "users" {
		t.Fatalf("unknown profile table %q", table)
	}
	_, err := db.Exec(context.Background(),
		fmt.Sprintf("INSERT INTO %s (id, display_name, email) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING", table),
		id, displayName, email)
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
