package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/epeers/scenarios/internal/database"
	"github.com/epeers/scenarios/internal/forecast"
	"github.com/epeers/scenarios/internal/presets"
	"github.com/epeers/scenarios/internal/repository"
	"github.com/epeers/scenarios/internal/scenario"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestRepo(t *testing.T, ttl time.Duration) *repository.ScenarioRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		t.Skip("PG_URL environment variable not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, pgURL)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	repo := repository.NewScenarioRepository(db.Pool, ttl)
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestScenarioRepository_RoundTrip(t *testing.T) {
	repo := getTestRepo(t, time.Hour)
	ctx := context.Background()

	s, err := repo.CreateSession(ctx)
	require.NoError(t, err)
	defer repo.EndSession(ctx, s.ID)

	crisis, _ := presets.Default().Get("financial-crisis")
	rec := scenario.Record{
		ID:          uuid.NewString(),
		Name:        "Crisis copy",
		Assumptions: crisis.Assumptions,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.SaveScenario(ctx, s.ID, rec))

	got, err := repo.GetScenario(ctx, s.ID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, rec.Assumptions, got.Assumptions)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	second := scenario.Record{ID: uuid.NewString(), Name: "Base", Assumptions: forecast.DefaultAssumptions(), CreatedAt: time.Now()}
	require.NoError(t, repo.SaveScenario(ctx, s.ID, second))

	list, err := repo.ListScenarios(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, rec.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	require.NoError(t, repo.DeleteScenario(ctx, s.ID, rec.ID))
	_, err = repo.GetScenario(ctx, s.ID, rec.ID)
	assert.ErrorIs(t, err, scenario.ErrNotFound)
}

func TestScenarioRepository_EndSessionCascades(t *testing.T) {
	repo := getTestRepo(t, time.Hour)
	ctx := context.Background()

	s, err := repo.CreateSession(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.SaveScenario(ctx, s.ID, scenario.Record{
		ID: uuid.NewString(), Name: "temp", Assumptions: forecast.DefaultAssumptions(), CreatedAt: time.Now(),
	}))

	require.NoError(t, repo.EndSession(ctx, s.ID))

	_, err = repo.ListScenarios(ctx, s.ID)
	assert.ErrorIs(t, err, scenario.ErrSessionNotFound)
	assert.ErrorIs(t, repo.EndSession(ctx, s.ID), scenario.ErrSessionNotFound)
}

func TestScenarioRepository_IdleSessionExpires(t *testing.T) {
	repo := getTestRepo(t, time.Second)
	ctx := context.Background()

	s, err := repo.CreateSession(ctx)
	require.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)

	_, err = repo.TouchSession(ctx, s.ID)
	assert.ErrorIs(t, err, scenario.ErrSessionNotFound)
}

func TestScenarioRepository_UnknownSession(t *testing.T) {
	repo := getTestRepo(t, time.Hour)

	err := repo.SaveScenario(context.Background(), uuid.NewString(), scenario.Record{ID: "x", Name: "x"})
	assert.ErrorIs(t, err, scenario.ErrSessionNotFound)
}

func TestScenarioRepository_SaveScenariosIsAtomic(t *testing.T) {
	repo := getTestRepo(t, time.Hour)
	ctx := context.Background()

	s, err := repo.CreateSession(ctx)
	require.NoError(t, err)
	defer repo.EndSession(ctx, s.ID)

	now := time.Now().UTC()
	batch := []scenario.Record{
		{ID: uuid.NewString(), Name: "One", Assumptions: forecast.DefaultAssumptions(), CreatedAt: now},
		{ID: uuid.NewString(), Name: "Two", Assumptions: forecast.DefaultAssumptions(), CreatedAt: now},
	}
	require.NoError(t, repo.SaveScenarios(ctx, s.ID, batch))

	// A duplicate id fails the second insert and rolls back the first
	dup := []scenario.Record{
		{ID: uuid.NewString(), Name: "Three", Assumptions: forecast.DefaultAssumptions(), CreatedAt: now},
		{ID: batch[0].ID, Name: "Clash", Assumptions: forecast.DefaultAssumptions(), CreatedAt: now},
	}
	require.Error(t, repo.SaveScenarios(ctx, s.ID, dup))

	list, err := repo.ListScenarios(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "One", list[0].Name)
	assert.Equal(t, "Two", list[1].Name)

	assert.ErrorIs(t, repo.SaveScenarios(ctx, "no-such-session", batch), scenario.ErrSessionNotFound)
}
