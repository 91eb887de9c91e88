package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwygoda/rentscan/internal/domain"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	repo, err := New(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.Remove(dbPath)
	}
	return repo, cleanup
}

var testListings = []domain.Listing{
	{Name: "Студия", PriceDisplay: "3 500 ₽ за ночь", PriceValue: 3500, Address: "Москва, Арбат, 1", URL: "https://sutochno.ru/moskva/flat/102"},
	{Name: "Дом у леса", PriceDisplay: "1.000 - 3.000 ₽", PriceValue: 2000, Address: "Москва", URL: "https://tvil.ru/city/moscow/hotels/1/"},
	{Name: "Квартира", PriceDisplay: "2 800 ₽/сутки", PriceValue: 2, Address: "Рядом со станцией метро Сокол", URL: "https://kvartirka.com/moscow/flat/777/"},
}

func TestRepository_SaveRun(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	ctx := context.Background()

	id, err := repo.SaveRun(ctx, 3, testListings)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "run id %q is not a UUID", id)

	got, err := repo.Listings(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, testListings, got)
}

func TestRepository_SaveRun_Empty(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	ctx := context.Background()

	id, err := repo.SaveRun(ctx, 2, nil)
	require.NoError(t, err)

	got, err := repo.Listings(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepository_RunsAreSeparate(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	ctx := context.Background()

	first, err := repo.SaveRun(ctx, 3, testListings)
	require.NoError(t, err)
	second, err := repo.SaveRun(ctx, 1, testListings[:1])
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	got, err := repo.Listings(ctx, second)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRepository_Listings_NotFound(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	_, err := repo.Listings(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestRepository_LatestRun(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	ctx := context.Background()

	_, err := repo.LatestRun(ctx)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	_, err = repo.SaveRun(ctx, 1, testListings[:1])
	require.NoError(t, err)
	want, err := repo.SaveRun(ctx, 3, testListings)
	require.NoError(t, err)

	got, err := repo.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepository_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "runs.db")

	repo, err := New(dbPath)
	require.NoError(t, err)
	id, err := repo.SaveRun(context.Background(), 3, testListings)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Listings(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

var _ domain.ListingRepository = (*Repository)(nil)
