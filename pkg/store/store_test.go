package store

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notpepejulian/aws-manager/internal/models"
)

var testAccount = models.Account{
	ID:          "acc-1",
	UserID:      "user-1",
	AccountID:   "123456789012",
	AccountName: "production",
	RoleARN:     "arn:aws:iam::123456789012:role/ReadOnlyRole",
	Region:      "us-east-1",
	IsActive:    true,
}

// fakeDB records the last statement and plays back canned outcomes.
type fakeDB struct {
	lastSQL  string
	lastArgs []any
	execTag  pgconn.CommandTag
	execErr  error
	row      pgx.Row
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL = sql
	f.lastArgs = args
	return f.execTag, f.execErr
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL = sql
	f.lastArgs = args
	return nil, pgx.ErrNoRows
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL = sql
	f.lastArgs = args
	return f.row
}

type errRow struct {
	err error
}

func (r errRow) Scan(dest ...any) error { return r.err }

func TestRecordAssumeSuccess(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("UPDATE 1")}
	s := &accountStore{db: db}

	err := s.RecordAssumeSuccess(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.Contains(t, db.lastSQL, "last_assumed_at = now()")
	assert.Contains(t, db.lastSQL, "last_error = NULL", "a success must clear the previous error")
	assert.Equal(t, []any{"acc-1"}, db.lastArgs)
}

func TestRecordAssumeSuccessUnknownAccount(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("UPDATE 0")}
	s := &accountStore{db: db}

	err := s.RecordAssumeSuccess(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordAssumeFailureLeavesTimestamp(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("UPDATE 1")}
	s := &accountStore{db: db}

	err := s.RecordAssumeFailure(context.Background(), "acc-1", "AccessDenied")
	require.NoError(t, err)

	assert.Contains(t, db.lastSQL, "last_error = $2")
	assert.NotContains(t, db.lastSQL, "last_assumed_at",
		"a failure must not touch the historical success timestamp")
	assert.Equal(t, []any{"acc-1", "AccessDenied"}, db.lastArgs)
}

func TestDeleteUnknownAccount(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 0")}
	s := &accountStore{db: db}

	err := s.Delete(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteScopedToUser(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 1")}
	s := &accountStore{db: db}

	err := s.Delete(context.Background(), "acc-1", "user-1")
	require.NoError(t, err)

	assert.Contains(t, db.lastSQL, "user_id = $2")
	assert.Equal(t, []any{"acc-1", "user-1"}, db.lastArgs)
}

func TestCreateMapsUniqueViolation(t *testing.T) {
	db := &fakeDB{row: errRow{err: &pgconn.PgError{Code: "23505"}}}
	s := &accountStore{db: db}

	_, err := s.Create(context.Background(), &testAccount)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGetMapsMissingRow(t *testing.T) {
	db := &fakeDB{row: errRow{err: pgx.ErrNoRows}}
	s := &accountStore{db: db}

	_, err := s.Get(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Contains(t, db.lastSQL, "user_id = $2", "lookups are scoped to the owning user")
}

func TestUpdateMapsMissingRow(t *testing.T) {
	db := &fakeDB{row: errRow{err: pgx.ErrNoRows}}
	s := &accountStore{db: db}

	_, err := s.Update(context.Background(), &models.AccountUpdate{ID: "missing", UserID: "user-1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCoalescesOmittedFields(t *testing.T) {
	db := &fakeDB{row: errRow{err: pgx.ErrNoRows}}
	s := &accountStore{db: db}

	_, _ = s.Update(context.Background(), &models.AccountUpdate{
		ID:          "acc-1",
		UserID:      "user-1",
		AccountName: "renamed",
	})

	assert.Contains(t, db.lastSQL, "is_active    = COALESCE($5, is_active)",
		"a nil flag must fall back to the stored value")
	require.Len(t, db.lastArgs, 7)
	assert.Nil(t, db.lastArgs[4], "an omitted isActive is bound as NULL")
}

func TestUpdateBindsExplicitActiveFlag(t *testing.T) {
	db := &fakeDB{row: errRow{err: pgx.ErrNoRows}}
	s := &accountStore{db: db}

	inactive := false
	_, _ = s.Update(context.Background(), &models.AccountUpdate{
		ID:       "acc-1",
		UserID:   "user-1",
		IsActive: &inactive,
	})

	require.Len(t, db.lastArgs, 7)
	flag, ok := db.lastArgs[4].(*bool)
	require.True(t, ok)
	assert.False(t, *flag)
}
