package degreecourses

import (
	"context"
	"sort"
	"sync"

	"github.com/user/degreeportal-go/apperror"
)

const (
	msgCourseNotFound  = "DegreeCourse not found"
	msgCourseDuplicate = "DegreeCourse with this name already exists at this university"
)

// Store persists degree courses and owns the (name, universityName) constraint.
type Store interface {
	FindByID(ctx context.Context, id string) (*DegreeCourse, error)
	List(ctx context.Context, filter Filter) ([]DegreeCourse, error)
	Insert(ctx context.Context, course *DegreeCourse) error
	Update(ctx context.Context, course *DegreeCourse) error
	Delete(ctx context.Context, id string) error
}

type courseKey struct{ name, university string }

func keyOf(c *DegreeCourse) courseKey { return courseKey{c.Name, c.UniversityName} }

// MemoryStore is a Store kept in process memory, safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	courses map[string]DegreeCourse
	keys    map[courseKey]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		courses: make(map[string]DegreeCourse),
		keys:    make(map[courseKey]string),
	}
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*DegreeCourse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, apperror.NewNotFoundError(msgCourseNotFound, nil)
	}
	return &c, nil
}

// List returns matching courses ordered by university and name.
func (s *MemoryStore) List(_ context.Context, filter Filter) ([]DegreeCourse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []DegreeCourse{}
	for _, c := range s.courses {
		if filter.UniversityShortName != "" && c.UniversityShortName != filter.UniversityShortName {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UniversityName != out[j].UniversityName {
			return out[i].UniversityName < out[j].UniversityName
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *MemoryStore) Insert(_ context.Context, course *DegreeCourse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.keys[keyOf(course)]; taken {
		return apperror.NewDuplicateKeyError(msgCourseDuplicate, nil)
	}
	if _, taken := s.courses[course.ID]; taken {
		return apperror.NewDuplicateKeyError(msgCourseDuplicate, nil)
	}
	s.courses[course.ID] = *course
	s.keys[keyOf(course)] = course.ID
	return nil
}

func (s *MemoryStore) Update(_ context.Context, course *DegreeCourse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.courses[course.ID]
	if !ok {
		return apperror.NewNotFoundError(msgCourseNotFound, nil)
	}
	if owner, taken := s.keys[keyOf(course)]; taken && owner != course.ID {
		return apperror.NewDuplicateKeyError(msgCourseDuplicate, nil)
	}
	delete(s.keys, keyOf(&old))
	s.courses[course.ID] = *course
	s.keys[keyOf(course)] = course.ID
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return apperror.NewNotFoundError(msgCourseNotFound, nil)
	}
	delete(s.keys, keyOf(&c))
	delete(s.courses, id)
	return nil
}
