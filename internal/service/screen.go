// Package service contains the business rules behind the JSON API.
// Services validate input and orchestrate repo and provider calls; no SQL
// lives here.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/myfriendben/screener/internal/domain"
	"github.com/myfriendben/screener/internal/repo"
)

// ScreenService creates and loads screens.
type ScreenService struct {
	repo     repo.ScreenRepo
	registry *domain.Registry
}

// NewScreenService constructs a ScreenService.
func NewScreenService(r repo.ScreenRepo, reg *domain.Registry) *ScreenService {
	return &ScreenService{repo: r, registry: reg}
}

// Create persists a new screen for whiteLabel. Unknown white labels are
// rejected with domain.ErrValidation before anything is written.
func (s *ScreenService) Create(ctx context.Context, whiteLabel, referrer, locale string) (domain.Screen, error) {
	if !s.registry.IsValid(whiteLabel) {
		return domain.Screen{}, fmt.Errorf("service.ScreenService.Create: %w: unknown white label %q", domain.ErrValidation, whiteLabel)
	}
	created, err := s.repo.Create(ctx, domain.Screen{
		WhiteLabel: whiteLabel,
		Referrer:   referrer,
		Locale:     locale,
	})
	if err != nil {
		return domain.Screen{}, fmt.Errorf("service.ScreenService.Create: %w", err)
	}
	return created, nil
}

// Get returns the screen with id. It is the fetch that session
// restoration drives, so it returns whatever white label was stored, valid
// or not; the caller decides what an unknown one means.
func (s *ScreenService) Get(ctx context.Context, id uuid.UUID) (domain.Screen, error) {
	got, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Screen{}, fmt.Errorf("service.ScreenService.Get: %w", err)
	}
	return got, nil
}

// Stats returns the number of screens per white label.
func (s *ScreenService) Stats(ctx context.Context) (map[string]int64, error) {
	counts, err := s.repo.CountByWhiteLabel(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ScreenService.Stats: %w", err)
	}
	return counts, nil
}
