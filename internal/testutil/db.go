// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ofertemutare/ofertemutare/internal/db"
	"github.com/ofertemutare/ofertemutare/internal/model"
)

// NewDB opens a migrated SQLite database in a temp dir, closed on cleanup.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
	database, err := db.Init("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(context.Background(), database.DB, "sqlite"))
	return database
}

// InsertRequest stores a moving request owned by customerID.
func InsertRequest(t *testing.T, database *sqlx.DB, customerID string) *model.MovingRequest {
	t.Helper()
	return InsertRequestWithID(t, database, uuid.New().String(), customerID)
}

func InsertRequestWithID(t *testing.T, database *sqlx.DB, id, customerID string) *model.MovingRequest {
	t.Helper()

	req := &model.MovingRequest{
		ID:            id,
		CustomerID:    customerID,
		CustomerName:  "Ion Popescu",
		CustomerEmail: "ion.popescu@example.com",
		CustomerPhone: "0722 123 456",
		FromCity:      "Cluj-Napoca",
		ToCity:        "București",
		MoveDate:      "2026-11-20",
		CreatedAt:     time.Now().UTC(),
	}
	_, err := database.Exec(
		`INSERT INTO moving_requests (id, customer_id, customer_name, customer_email, customer_phone, from_city, to_city, move_date, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		req.ID, req.CustomerID, req.CustomerName, req.CustomerEmail, req.CustomerPhone,
		req.FromCity, req.ToCity, req.MoveDate, req.Details, req.CreatedAt,
	)
	require.NoError(t, err)
	return req
}

// Clock is a settable time source for code that takes a Now func.
type Clock struct {
	T time.Time
}

func NewClock(t time.Time) *Clock { return &Clock{T: t} }

func (c *Clock) Now() time.Time { return c.T }

func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }
