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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DefaultPassword is the plaintext behind testPasswordHash; all seeded users
// share it so login helpers stay trivial.
const DefaultPassword = "password123"

// bcrypt of DefaultPassword, precomputed so seeding stays fast.
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

const defaultOrganization = "Default Lab"

func CreateTestOrganization(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	orgID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO organizations (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING", orgID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM organizations WHERE name = $1", name).Scan(&orgID)
	}

	return orgID
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	var orgID uuid.UUID

	ctx := context.Background()
	err := db.QueryRow(ctx, "SELECT id FROM organizations WHERE name = $1 LIMIT 1", defaultOrganization).Scan(&orgID)
	require.NoError(t, err)

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, organization_id, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role, orgID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// CreateTestResource inserts an available resource managed by managerID and
// returns its id.
func CreateTestResource(t *testing.T, db DBLike, name string, managerID uuid.UUID) uuid.UUID {
	t.Helper()

	resourceID := uuid.New()
	var orgID uuid.UUID

	ctx := context.Background()
	err := db.QueryRow(ctx, "SELECT id FROM organizations WHERE name = $1 LIMIT 1", defaultOrganization).Scan(&orgID)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `INSERT INTO resources (id, name, description, location, status, organization_id, manager_id)
		VALUES ($1, $2, 'Seeded by tests', 'Building A', 'available', $3, $4)`,
		resourceID, name, orgID, managerID)
	require.NoError(t, err)

	return resourceID
}

// CreateTestBooking inserts a booking row directly, bypassing the API. Useful
// for preparing approved or expired bookings that the HTTP surface cannot
// produce in one step.
func CreateTestBooking(t *testing.T, db DBLike, resourceID, requesterID uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `INSERT INTO bookings (id, resource_id, requester_id, start_time, end_time, purpose, status)
		VALUES ($1, $2, $3, $4, $5, 'Seeded by tests', $6)`,
		bookingID, resourceID, requesterID, start, end, status)
	require.NoError(t, err)

	return bookingID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO organizations (id, name) VALUES
		    (gen_random_uuid(), 'Default Lab'),
		    (gen_random_uuid(), 'Visiting Lab')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
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
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
