// Package testutil holds in-memory stand-ins for the Postgres store and the
// mail queue, used by service, handler and router tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stemsi/codesprint-backend/internal/model"
	"github.com/stemsi/codesprint-backend/internal/repository"
)

// RegistrantStore is an in-memory registrant table. Unique constraints are
// enforced atomically under one lock, like the database would.
type RegistrantStore struct {
	mu     sync.Mutex
	rows   map[int]model.Registrant
	nextID int
	now    func() time.Time

	// Err, when set, is returned by every method.
	Err error
	// ExistsHook runs inside ExistsBy before the lookup; tests use it to
	// interleave concurrent submissions.
	ExistsHook func(field model.UniqueField)
}

// NewRegistrantStore creates an empty store.
func NewRegistrantStore() *RegistrantStore {
	return &RegistrantStore{rows: make(map[int]model.Registrant), nextID: 1, now: time.Now}
}

func (s *RegistrantStore) Create(_ context.Context, reg *model.Registrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if field, ok := s.conflictLocked(reg, 0); ok {
		return &repository.UniqueViolationError{Field: field, Constraint: "memory"}
	}

	reg.ID = s.nextID
	// Strictly increasing timestamps keep newest-first ordering stable.
	reg.CreatedAt = s.now().Add(time.Duration(s.nextID) * time.Microsecond)
	s.nextID++
	s.rows[reg.ID] = *reg
	return nil
}

func (s *RegistrantStore) GetByID(_ context.Context, id int) (*model.Registrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	reg, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &reg, nil
}

func (s *RegistrantStore) ExistsBy(_ context.Context, field model.UniqueField, value string, excludeID int) (bool, error) {
	if s.ExistsHook != nil {
		s.ExistsHook(field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}

	for id, reg := range s.rows {
		if id != excludeID && reg.Value(field) == value {
			return true, nil
		}
	}
	return false, nil
}

func (s *RegistrantStore) List(_ context.Context) ([]model.Registrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]model.Registrant, 0, len(s.rows))
	for _, reg := range s.rows {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *RegistrantStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.rows), nil
}

func (s *RegistrantStore) Update(_ context.Context, reg *model.Registrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	existing, ok := s.rows[reg.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if field, ok := s.conflictLocked(reg, reg.ID); ok {
		return &repository.UniqueViolationError{Field: field, Constraint: "memory"}
	}

	reg.CreatedAt = existing.CreatedAt
	s.rows[reg.ID] = *reg
	return nil
}

func (s *RegistrantStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// Seed inserts a registrant directly, bypassing the pipeline.
func (s *RegistrantStore) Seed(reg model.Registrant) model.Registrant {
	_ = s.Create(context.Background(), &reg)
	return reg
}

func (s *RegistrantStore) conflictLocked(reg *model.Registrant, excludeID int) (model.UniqueField, bool) {
	for _, field := range model.UniqueFields {
		for id, row := range s.rows {
			if id != excludeID && row.Value(field) == reg.Value(field) {
				return field, true
			}
		}
	}
	return "", false
}

// AdminStore is an in-memory admin table keyed by email.
type AdminStore struct {
	mu     sync.Mutex
	admins map[string]model.Admin
	Err    error
}

// NewAdminStore creates a store holding the given admins.
func NewAdminStore(admins ...model.Admin) *AdminStore {
	s := &AdminStore{admins: make(map[string]model.Admin)}
	for _, a := range admins {
		s.admins[a.Email] = a
	}
	return s
}

func (s *AdminStore) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	a, ok := s.admins[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}
