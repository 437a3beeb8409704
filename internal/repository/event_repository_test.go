package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	apperrors "agenda/internal/errors"
	"agenda/internal/model"
)

// stubConn scripts statement results so repository behavior around affected
// row counts can be exercised without a live server. Every Exec reports the
// configured row count and every Query replays the configured rows.
type stubConn struct {
	affected int64
	rows     func() *stubRows
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

func (c *stubConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return stubResult{affected: c.affected}, nil
}

func (c *stubConn) QueryContext(context.Context, string, []driver.NamedValue) (driver.Rows, error) {
	return c.rows(), nil
}

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubResult struct{ affected int64 }

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.affected, nil }

type stubRows struct {
	columns []string
	values  [][]driver.Value
	pos     int
}

func (r *stubRows) Columns() []string { return r.columns }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.pos])
	r.pos++
	return nil
}

type stubConnector struct{ conn *stubConn }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c stubConnector) Driver() driver.Driver                        { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return nil, errors.New("not supported") }

func newStubDB(t *testing.T, conn *stubConn) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sql.OpenDB(stubConnector{conn: conn}),
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db
}

var eventColumns = []string{
	"id", "user_id", "title", "description", "start_time",
	"end_time", "type", "color", "recurrence",
}

// MySQL reports rows changed rather than rows matched, so replacing an event
// with its stored values yields zero affected rows. The event still exists
// and must be returned, not reported as missing.
func TestEventRepository_ReplaceOne_UnchangedRow(t *testing.T) {
	id, userID := uuid.New(), uuid.New()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	conn := &stubConn{
		affected: 0,
		rows: func() *stubRows {
			return &stubRows{
				columns: eventColumns,
				values: [][]driver.Value{{
					id.String(), userID.String(), "Standup", "Daily sync",
					start, start.Add(15 * time.Minute), "meeting", "#28a745", "daily",
				}},
			}
		},
	}
	repo := NewEventRepository(newStubDB(t, conn))

	got, err := repo.ReplaceOne(context.Background(), id, userID, &model.Event{
		Title:       "Standup",
		Description: "Daily sync",
		StartTime:   start,
		EndTime:     start.Add(15 * time.Minute),
		Type:        "meeting",
		Color:       "#28a745",
		Recurrence:  model.RecurrenceDaily,
	})

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "Standup", got.Title)
}

func TestEventRepository_ReplaceOne_Missing(t *testing.T) {
	conn := &stubConn{
		affected: 0,
		rows:     func() *stubRows { return &stubRows{columns: eventColumns} },
	}
	repo := NewEventRepository(newStubDB(t, conn))

	got, err := repo.ReplaceOne(context.Background(), uuid.New(), uuid.New(), &model.Event{Title: "Standup"})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}
