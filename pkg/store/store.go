// Package store persists account registrations in PostgreSQL and tracks the
// outcome of assume-role attempts per account.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notpepejulian/aws-manager/internal/models"
)

var (
	// ErrNotFound is returned when an account row does not exist or belongs
	// to a different user.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicate is returned when a user registers the same AWS account
	// number twice.
	ErrDuplicate = errors.New("account already registered")
)

// AccountStore is the registry of AWS account registrations.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	Get(ctx context.Context, id, userID string) (*models.Account, error)
	List(ctx context.Context, userID string) ([]models.Account, error)
	Update(ctx context.Context, update *models.AccountUpdate) (*models.Account, error)
	Delete(ctx context.Context, id, userID string) error

	RecordAssumeSuccess(ctx context.Context, id string) error
	RecordAssumeFailure(ctx context.Context, id, message string) error
}

// dbtx is the subset of pgxpool.Pool the store uses; a pgx.Tx satisfies it
// too, as does a fake in tests.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type accountStore struct {
	db dbtx
}

// NewAccountStore creates a store backed by the given pool.
func NewAccountStore(pool *pgxpool.Pool) AccountStore {
	return &accountStore{db: pool}
}

const accountColumns = `id, user_id, account_id, account_name, role_arn,
	COALESCE(description, ''), region, is_active, last_assumed_at, last_error,
	created_at, updated_at`

func (s *accountStore) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO aws_accounts (user_id, account_id, account_name, role_arn, description, region, is_active)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING `+accountColumns,
		account.UserID, account.AccountID, account.AccountName,
		account.RoleARN, account.Description, account.Region, account.IsActive,
	)

	created, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return created, nil
}

func (s *accountStore) Get(ctx context.Context, id, userID string) (*models.Account, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM aws_accounts
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *accountStore) List(ctx context.Context, userID string) ([]models.Account, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+accountColumns+`
		FROM aws_accounts
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// Update applies a partial update: empty strings and a nil IsActive
// coalesce to the stored values, so omitted fields are never overwritten.
func (s *accountStore) Update(ctx context.Context, update *models.AccountUpdate) (*models.Account, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE aws_accounts
		SET account_name = COALESCE(NULLIF($1, ''), account_name),
		    role_arn     = COALESCE(NULLIF($2, ''), role_arn),
		    description  = COALESCE(NULLIF($3, ''), description),
		    region       = COALESCE(NULLIF($4, ''), region),
		    is_active    = COALESCE($5, is_active),
		    updated_at   = now()
		WHERE id = $6 AND user_id = $7
		RETURNING `+accountColumns,
		update.AccountName, update.RoleARN, update.Description,
		update.Region, update.IsActive, update.ID, update.UserID,
	)

	updated, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *accountStore) Delete(ctx context.Context, id, userID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM aws_accounts
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordAssumeSuccess advances last_assumed_at and clears last_error.
func (s *accountStore) RecordAssumeSuccess(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE aws_accounts
		SET last_assumed_at = now(), last_error = NULL
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordAssumeFailure sets last_error and leaves last_assumed_at untouched,
// so a historical success timestamp survives a newer failure.
func (s *accountStore) RecordAssumeFailure(ctx context.Context, id, message string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE aws_accounts
		SET last_error = $2
		WHERE id = $1`,
		id, message,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID, &account.UserID, &account.AccountID, &account.AccountName,
		&account.RoleARN, &account.Description, &account.Region, &account.IsActive,
		&account.LastAssumedAt, &account.LastError,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
