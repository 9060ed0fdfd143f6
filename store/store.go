// Package store holds the authoritative in-memory project list and notifies
// subscribers whenever it changes.
package store

import (
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"project-board/domain"
)

// Store is the single source of truth for the board. Construct one in main
// and hand it to every component that needs it; tests build their own.
//
// Every operation is atomic: the internal mutex is held for the full
// mutation including subscriber notification, so notifications are delivered
// in mutation order and each carries a consistent snapshot. Subscribers must
// not call back into the Store.
type Store struct {
	mu          sync.Mutex
	projects    []domain.Project
	subscribers []func([]domain.Project)
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Subscribe appends fn to the subscriber list. fn is not invoked now, only on
// subsequent changes; on every change it receives a fresh copy of the full
// project list, in subscription order. Subscriptions are never removed.
func (s *Store) Subscribe(fn func([]domain.Project)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// SubscribeNow appends fn and invokes it once with the current snapshot
// before releasing the lock, so no change can slip between the seeding call
// and the subscription.
func (s *Store) SubscribeNow(fn func([]domain.Project)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
	fn(s.snapshotLocked())
}

// Add constructs a new active project with a freshly generated identity,
// appends it and notifies every subscriber. Validation is the caller's
// responsibility; Add always succeeds.
func (s *Store) Add(title, description string, people int) domain.Project {
	p := domain.Project{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		People:      people,
		Status:      domain.StatusActive,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append(s.projects, p)
	log.WithFields(log.Fields{"id": p.ID, "title": p.Title}).Debug("project added")
	s.notifyLocked()
	return p
}

// Move changes the status of the project with the given identity and reports
// whether anything changed. An unknown identity or an unchanged status is a
// silent no-op: no notification fires and false is returned.
func (s *Store) Move(id string, status domain.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		if s.projects[i].Status == status {
			return false
		}
		s.projects[i].Status = status
		log.WithFields(log.Fields{"id": id, "status": status}).Debug("project moved")
		s.notifyLocked()
		return true
	}
	return false
}

// Projects returns a snapshot copy of the full project list in insertion
// order.
func (s *Store) Projects() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ProjectsByStatus returns a snapshot of the projects with the given status,
// preserving insertion order.
func (s *Store) ProjectsByStatus(status domain.Status) []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) snapshotLocked() []domain.Project {
	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// notifyLocked invokes every subscriber in subscription order. Each gets its
// own copy so no observer can mutate shared state.
func (s *Store) notifyLocked() {
	for _, fn := range s.subscribers {
		fn(s.snapshotLocked())
	}
}
