package applications

import (
	"context"
	"sort"
	"sync"

	"github.com/user/degreeportal-go/apperror"
)

const (
	msgApplicationNotFound  = "DegreeCourseApplication not found"
	msgApplicationDuplicate = "An application for this degree course and period already exists"
)

// Store persists applications and owns the one-application-per-period constraint.
type Store interface {
	FindByID(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context, filter Filter) ([]Application, error)
	Insert(ctx context.Context, app *Application) error
	Update(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id string) error
}

type periodKey struct {
	applicant, course string
	year              int
	shortName         string
}

func keyOf(a *Application) periodKey {
	return periodKey{a.ApplicantUserID, a.DegreeCourseID, a.TargetPeriodYear, a.TargetPeriodShortName}
}

// MemoryStore is a Store kept in process memory, safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	apps map[string]Application
	keys map[periodKey]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		apps: make(map[string]Application),
		keys: make(map[periodKey]string),
	}
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, apperror.NewNotFoundError(msgApplicationNotFound, nil)
	}
	return &a, nil
}

// List returns matching applications ordered by applicant, year and period.
func (s *MemoryStore) List(_ context.Context, filter Filter) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Application{}
	for _, a := range s.apps {
		if filter.matches(&a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ApplicantUserID != out[j].ApplicantUserID {
			return out[i].ApplicantUserID < out[j].ApplicantUserID
		}
		if out[i].TargetPeriodYear != out[j].TargetPeriodYear {
			return out[i].TargetPeriodYear < out[j].TargetPeriodYear
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) Insert(_ context.Context, app *Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.keys[keyOf(app)]; taken {
		return apperror.NewDuplicateKeyError(msgApplicationDuplicate, nil)
	}
	if _, taken := s.apps[app.ID]; taken {
		return apperror.NewDuplicateKeyError(msgApplicationDuplicate, nil)
	}
	s.apps[app.ID] = *app
	s.keys[keyOf(app)] = app.ID
	return nil
}

func (s *MemoryStore) Update(_ context.Context, app *Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.apps[app.ID]
	if !ok {
		return apperror.NewNotFoundError(msgApplicationNotFound, nil)
	}
	if owner, taken := s.keys[keyOf(app)]; taken && owner != app.ID {
		return apperror.NewDuplicateKeyError(msgApplicationDuplicate, nil)
	}
	delete(s.keys, keyOf(&old))
	s.apps[app.ID] = *app
	s.keys[keyOf(app)] = app.ID
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return apperror.NewNotFoundError(msgApplicationNotFound, nil)
	}
	delete(s.keys, keyOf(&a))
	delete(s.apps, id)
	return nil
}
