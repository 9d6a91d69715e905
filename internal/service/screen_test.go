package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfriendben/screener/internal/domain"
	"github.com/myfriendben/screener/internal/repo"
	"github.com/myfriendben/screener/internal/service"
)

// mockScreenRepo is a hand-written test double for repo.ScreenRepo.
// Set only the function fields a test needs.
type mockScreenRepo struct {
	create            func(ctx context.Context, s domain.Screen) (domain.Screen, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Screen, error)
	countByWhiteLabel func(ctx context.Context) (map[string]int64, error)
}

func (m *mockScreenRepo) Create(ctx context.Context, s domain.Screen) (domain.Screen, error) {
	return m.create(ctx, s)
}
func (m *mockScreenRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Screen, error) {
	return m.getByID(ctx, id)
}
func (m *mockScreenRepo) CountByWhiteLabel(ctx context.Context) (map[string]int64, error) {
	return m.countByWhiteLabel(ctx)
}

// compile-time check: mockScreenRepo must satisfy repo.ScreenRepo.
var _ repo.ScreenRepo = (*mockScreenRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func registry() *domain.Registry {
	return domain.NewRegistry([]domain.WhiteLabel{
		{Code: "_default"},
		{Code: "co"},
		{Code: "cesn", DefaultPath: "landing-page"},
	})
}

func echoRepo() *mockScreenRepo {
	return &mockScreenRepo{
		create: func(_ context.Context, s domain.Screen) (domain.Screen, error) {
			s.UUID = uuid.New()
			s.CreatedAt = time.Now()
			s.UpdatedAt = s.CreatedAt
			return s, nil
		},
	}
}

// ---- Create ----------------------------------------------------------------

func TestScreenService_Create_Valid(t *testing.T) {
	svc := service.NewScreenService(echoRepo(), registry())

	got, err := svc.Create(context.Background(), "co", "211co", "es")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.UUID)
	assert.Equal(t, "co", got.WhiteLabel)
	assert.Equal(t, "211co", got.Referrer)
	assert.Equal(t, "es", got.Locale)
}

func TestScreenService_Create_UnknownWhiteLabel(t *testing.T) {
	called := false
	r := &mockScreenRepo{create: func(_ context.Context, s domain.Screen) (domain.Screen, error) {
		called = true
		return s, nil
	}}
	svc := service.NewScreenService(r, registry())

	for _, wl := range []string{"", "CO", "co ", "tx"} {
		_, err := svc.Create(context.Background(), wl, "", "")
		assert.ErrorIs(t, err, domain.ErrValidation, "white label %q", wl)
	}
	assert.False(t, called, "repo must not be reached for invalid input")
}

func TestScreenService_Create_RepoError(t *testing.T) {
	dbErr := errors.New("connection reset")
	r := &mockScreenRepo{create: func(context.Context, domain.Screen) (domain.Screen, error) {
		return domain.Screen{}, dbErr
	}}
	svc := service.NewScreenService(r, registry())

	_, err := svc.Create(context.Background(), "co", "", "")

	assert.ErrorIs(t, err, dbErr)
}

// ---- Get -------------------------------------------------------------------

func TestScreenService_Get(t *testing.T) {
	id := uuid.New()
	r := &mockScreenRepo{getByID: func(_ context.Context, got uuid.UUID) (domain.Screen, error) {
		assert.Equal(t, id, got)
		return domain.Screen{UUID: id, WhiteLabel: "legacy_tenant"}, nil
	}}
	svc := service.NewScreenService(r, registry())

	s, err := svc.Get(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "legacy_tenant", s.WhiteLabel, "stored labels are returned unvalidated")
}

func TestScreenService_Get_NotFound(t *testing.T) {
	r := &mockScreenRepo{getByID: func(context.Context, uuid.UUID) (domain.Screen, error) {
		return domain.Screen{}, domain.ErrNotFound
	}}
	svc := service.NewScreenService(r, registry())

	_, err := svc.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Stats -----------------------------------------------------------------

func TestScreenService_Stats(t *testing.T) {
	r := &mockScreenRepo{countByWhiteLabel: func(context.Context) (map[string]int64, error) {
		return map[string]int64{"co": 3}, nil
	}}
	svc := service.NewScreenService(r, registry())

	got, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"co": 3}, got)
}
