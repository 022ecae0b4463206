package applications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/degreeportal-go/apperror"
)

func TestMemoryStore_OneApplicationPerPeriod(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	app := func(id, applicant, course string, year int, period string) *Application {
		return &Application{ID: id, ApplicantUserID: applicant, DegreeCourseID: course, TargetPeriodYear: year, TargetPeriodShortName: period}
	}

	require.NoError(t, store.Insert(ctx, app("1", "alice", "c1", 2026, WinterSemester)))
	require.NoError(t, store.Insert(ctx, app("2", "alice", "c1", 2026, SummerSemester)))
	require.NoError(t, store.Insert(ctx, app("3", "bob", "c1", 2026, WinterSemester)))

	assert.True(t, apperror.IsDuplicateKey(store.Insert(ctx, app("4", "alice", "c1", 2026, WinterSemester))))
	assert.True(t, apperror.IsDuplicateKey(store.Update(ctx, app("2", "alice", "c1", 2026, WinterSemester))))

	require.NoError(t, store.Update(ctx, app("1", "alice", "c1", 2027, WinterSemester)))
	assert.NoError(t, store.Insert(ctx, app("4", "alice", "c1", 2026, WinterSemester)))

	mine, err := store.List(ctx, Filter{ApplicantUserID: "alice"})
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, 2027, mine[2].TargetPeriodYear)

	require.NoError(t, store.Delete(ctx, "3"))
	forCourse, err := store.List(ctx, Filter{DegreeCourseID: "c1"})
	require.NoError(t, err)
	assert.Len(t, forCourse, 3)
	_, err = store.FindByID(ctx, "3")
	assert.True(t, apperror.IsNotFound(err))
}
