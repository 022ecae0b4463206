package users

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/degreeportal-go/apperror"
	"github.com/user/degreeportal-go/auth"
	"github.com/user/degreeportal-go/db"
)

const identityColumns = `user_id, password_hash, first_name, last_name, is_administrator`

// PostgresStore is a Store backed by the users table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

func scanIdentity(row pgx.Row) (*auth.Identity, error) {
	var identity auth.Identity
	err := row.Scan(
		&identity.UserID,
		&identity.PasswordHash,
		&identity.FirstName,
		&identity.LastName,
		&identity.IsAdministrator,
	)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *PostgresStore) FindByUserID(ctx context.Context, userID string) (*auth.Identity, error) {
	row := s.db.QueryRow(ctx, `SELECT `+identityColumns+` FROM users WHERE user_id = $1`, userID)
	identity, err := scanIdentity(row)
	if err != nil {
		return nil, db.MapError(err, "failed to get user", msgUserNotFound, msgUserIDTaken)
	}
	return identity, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]auth.Identity, error) {
	rows, err := s.db.Query(ctx, `SELECT `+identityColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	defer rows.Close()

	out := []auth.Identity{}
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan user", err)
		}
		out = append(out, *identity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	return out, nil
}

func (s *PostgresStore) Insert(ctx context.Context, identity *auth.Identity) error {
	if identity.UserID == "" {
		return apperror.NewValidationError(msgUserIDMissing, nil)
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (`+identityColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		identity.UserID, identity.PasswordHash, identity.FirstName, identity.LastName, identity.IsAdministrator,
	)
	return db.MapError(err, "failed to insert user", msgUserNotFound, msgUserIDTaken)
}

func (s *PostgresStore) Update(ctx context.Context, identity *auth.Identity) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $2, first_name = $3, last_name = $4, is_administrator = $5, updated_at = now()
		 WHERE user_id = $1`,
		identity.UserID, identity.PasswordHash, identity.FirstName, identity.LastName, identity.IsAdministrator,
	)
	if err != nil {
		return db.MapError(err, "failed to update user", msgUserNotFound, msgUserIDTaken)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(msgUserNotFound, nil)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(msgUserNotFound, nil)
	}
	return nil
}
