package degreecourses

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/degreeportal-go/apperror"
	"github.com/user/degreeportal-go/db"
)

const courseColumns = `id, name, short_name, university_name, university_short_name, department_name, department_short_name`

// PostgresStore is a Store backed by the degree_courses table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

func scanCourse(row pgx.Row) (*DegreeCourse, error) {
	var c DegreeCourse
	// id is a UUID column; ::text in the queries lets it scan into a string.
	err := row.Scan(&c.ID, &c.Name, &c.ShortName, &c.UniversityName, &c.UniversityShortName, &c.DepartmentName, &c.DepartmentShortName)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const selectCourses = `SELECT id::text, name, short_name, university_name, university_short_name, department_name, department_short_name FROM degree_courses`

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*DegreeCourse, error) {
	c, err := scanCourse(s.db.QueryRow(ctx, selectCourses+` WHERE id = $1`, id))
	if err != nil {
		return nil, db.MapError(err, "failed to get degree course", msgCourseNotFound, msgCourseDuplicate)
	}
	return c, nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]DegreeCourse, error) {
	query := selectCourses
	var args []interface{}
	if filter.UniversityShortName != "" {
		query += ` WHERE university_short_name = $1`
		args = append(args, filter.UniversityShortName)
	}
	query += ` ORDER BY university_name, name`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list degree courses", err)
	}
	defer rows.Close()

	out := []DegreeCourse{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan degree course", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list degree courses", err)
	}
	return out, nil
}

func (s *PostgresStore) Insert(ctx context.Context, c *DegreeCourse) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO degree_courses (`+courseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.ShortName, c.UniversityName, c.UniversityShortName, c.DepartmentName, c.DepartmentShortName,
	)
	return db.MapError(err, "failed to insert degree course", msgCourseNotFound, msgCourseDuplicate)
}

func (s *PostgresStore) Update(ctx context.Context, c *DegreeCourse) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE degree_courses
		 SET name = $2, short_name = $3, university_name = $4, university_short_name = $5,
		     department_name = $6, department_short_name = $7
		 WHERE id = $1`,
		c.ID, c.Name, c.ShortName, c.UniversityName, c.UniversityShortName, c.DepartmentName, c.DepartmentShortName,
	)
	if err != nil {
		return db.MapError(err, "failed to update degree course", msgCourseNotFound, msgCourseDuplicate)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(msgCourseNotFound, nil)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM degree_courses WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete degree course", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(msgCourseNotFound, nil)
	}
	return nil
}
