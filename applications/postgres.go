package applications

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/degreeportal-go/apperror"
	"github.com/user/degreeportal-go/db"
)

const selectApplications = `SELECT id::text, applicant_user_id, degree_course_id::text, target_period_year, target_period_short_name
FROM degree_course_applications`

// PostgresStore is a Store backed by the degree_course_applications table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	if err := row.Scan(&a.ID, &a.ApplicantUserID, &a.DegreeCourseID, &a.TargetPeriodYear, &a.TargetPeriodShortName); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Application, error) {
	a, err := scanApplication(s.db.QueryRow(ctx, selectApplications+` WHERE id = $1`, id))
	if err != nil {
		return nil, db.MapError(err, "failed to get application", msgApplicationNotFound, msgApplicationDuplicate)
	}
	return a, nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]Application, error) {
	var where []string
	var args []interface{}
	if filter.ApplicantUserID != "" {
		args = append(args, filter.ApplicantUserID)
		where = append(where, fmt.Sprintf("applicant_user_id = $%d", len(args)))
	}
	if filter.DegreeCourseID != "" {
		args = append(args, filter.DegreeCourseID)
		where = append(where, fmt.Sprintf("degree_course_id = $%d", len(args)))
	}
	query := selectApplications
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY applicant_user_id, target_period_year, id"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list applications", err)
	}
	defer rows.Close()

	out := []Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan application", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list applications", err)
	}
	return out, nil
}

func (s *PostgresStore) Insert(ctx context.Context, a *Application) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO degree_course_applications
		 (id, applicant_user_id, degree_course_id, target_period_year, target_period_short_name)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.ApplicantUserID, a.DegreeCourseID, a.TargetPeriodYear, a.TargetPeriodShortName,
	)
	return db.MapError(err, "failed to insert application", msgApplicationNotFound, msgApplicationDuplicate)
}

func (s *PostgresStore) Update(ctx context.Context, a *Application) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE degree_course_applications
		 SET applicant_user_id = $2, degree_course_id = $3, target_period_year = $4, target_period_short_name = $5
		 WHERE id = $1`,
		a.ID, a.ApplicantUserID, a.DegreeCourseID, a.TargetPeriodYear, a.TargetPeriodShortName,
	)
	if err != nil {
		return db.MapError(err, "failed to update application", msgApplicationNotFound, msgApplicationDuplicate)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(msgApplicationNotFound, nil)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM degree_course_applications WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete application", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(msgApplicationNotFound, nil)
	}
	return nil
}
