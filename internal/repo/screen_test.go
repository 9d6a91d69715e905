package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfriendben/screener/internal/domain"
	"github.com/myfriendben/screener/internal/repo"
	"github.com/myfriendben/screener/testutil"
)

// newTestRepo returns a ScreenRepo inside a transaction that is rolled back
// when the test finishes.
func newTestRepo(t *testing.T) repo.ScreenRepo {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return repo.NewScreenRepo(tx)
}

func TestScreenRepo_Create(t *testing.T) {
	r := newTestRepo(t)

	got, err := r.Create(context.Background(), domain.Screen{
		WhiteLabel: "co",
		Referrer:   "211co",
		Locale:     "es",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.UUID, "uuid should be DB-generated")
	assert.Equal(t, "co", got.WhiteLabel)
	assert.Equal(t, "211co", got.Referrer)
	assert.Equal(t, "es", got.Locale)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestScreenRepo_Create_EmptyOptionalFields(t *testing.T) {
	r := newTestRepo(t)

	got, err := r.Create(context.Background(), domain.Screen{WhiteLabel: "nc"})

	require.NoError(t, err)
	assert.Empty(t, got.Referrer)
	assert.Empty(t, got.Locale)
}

func TestScreenRepo_GetByID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	created, err := r.Create(ctx, domain.Screen{WhiteLabel: "ma"})
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.UUID)

	require.NoError(t, err)
	assert.Equal(t, created.UUID, got.UUID)
	assert.Equal(t, "ma", got.WhiteLabel)
}

func TestScreenRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScreenRepo_CountByWhiteLabel(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	for _, wl := range []string{"co", "co", "cesn"} {
		_, err := r.Create(ctx, domain.Screen{WhiteLabel: wl})
		require.NoError(t, err)
	}

	counts, err := r.CountByWhiteLabel(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["co"])
	assert.Equal(t, int64(1), counts["cesn"])
}
