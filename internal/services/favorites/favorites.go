package favorites

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"weather-app/internal/models"
	"weather-app/pkg/logger"
)

var (
	ErrNotFound  = errors.New("location not found")
	ErrEmptyName = errors.New("location name is empty")
)

// Service owns the favorites list. Every change is persisted before it becomes visible;
// a failed save leaves the list as it was.
type Service struct {
	repo  Repository
	newID func() string
	l     *logger.Logger

	mu        sync.Mutex
	locations []models.Location
}

type Option func(*Service)

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService reads the stored list. Unreadable data is logged and replaced by an empty list.
func NewService(ctx context.Context, repo Repository, l *logger.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		newID:     uuid.NewString,
		l:         l,
		locations: []models.Location{},
	}
	for _, opt := range opts {
		opt(s)
	}

	locations, err := repo.Load(ctx)
	if err != nil {
		l.Warning("failed to load favorites, starting empty", map[string]any{"err": err.Error()})
		return s
	}
	s.locations = locations

	l.Info("loaded favorites", map[string]any{"count": len(locations)})

	return s
}

func (s *Service) List() []models.Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.locations)
}

func (s *Service) Find(id string) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(id); i >= 0 {
		return s.locations[i], nil
	}
	return models.Location{}, ErrNotFound
}

// Add appends name unless a favorite with the same name (ignoring case) exists, in which
// case that entry is returned and added is false.
func (s *Service) Add(ctx context.Context, name string) (loc models.Location, added bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Location{}, false, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.locations {
		if models.SameName(existing.Name, name) {
			return existing, false, nil
		}
	}

	loc = models.Location{ID: s.newID(), Name: name}
	next := append(slices.Clone(s.locations), loc)
	if err := s.commit(ctx, next); err != nil {
		return models.Location{}, false, err
	}

	s.l.Info("added favorite", map[string]any{"id": loc.ID, "name": loc.Name})

	return loc, true, nil
}

// SetCurrent records the device's position as the first entry, replacing any previous one.
func (s *Service) SetCurrent(ctx context.Context, name string) (models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Location{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc := models.Location{ID: s.newID(), Name: name, IsCurrent: true}
	next := make([]models.Location, 0, len(s.locations)+1)
	next = append(next, loc)
	for _, existing := range s.locations {
		if !existing.IsCurrent {
			next = append(next, existing)
		}
	}

	if err := s.commit(ctx, next); err != nil {
		return models.Location{}, err
	}

	return loc, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.locations), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.l.Info("removed favorite", map[string]any{"id": id})

	return nil
}

// commit must be called with s.mu held.
func (s *Service) commit(ctx context.Context, next []models.Location) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return pkgerrors.Wrap(err, "save favorites")
	}
	s.locations = next
	return nil
}

func (s *Service) index(id string) int {
	return slices.IndexFunc(s.locations, func(l models.Location) bool { return l.ID == id })
}
