package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/epeers/scenarios/internal/cache"
	"github.com/epeers/scenarios/internal/forecast"
	"github.com/epeers/scenarios/internal/models"
	"github.com/epeers/scenarios/internal/presets"
	"github.com/epeers/scenarios/internal/scenario"
	"github.com/epeers/scenarios/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScenarioService(t *testing.T) (*services.ScenarioService, string) {
	t.Helper()
	store := cache.NewSessionCache(time.Hour)
	svc := services.NewScenarioService(store, scenario.NewComparator(forecast.DefaultModel()), presets.Default())
	s, err := svc.StartSession(context.Background())
	require.NoError(t, err)
	return svc, s.ID
}

func withVolatility(v forecast.Volatility, growth float64) *forecast.AssumptionSet {
	a := forecast.DefaultAssumptions()
	a.MarketVolatility = v
	a.EconomicGrowth = growth
	return &a
}

func TestScenarioService_SaveAssumptions(t *testing.T) {
	svc, sid := newScenarioService(t)
	ctx := context.Background()

	rec, err := svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "  Calm  ", Assumptions: withVolatility(forecast.VolatilityLow, 2)})
	require.NoError(t, err)
	assert.Equal(t, "Calm", rec.Name)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := svc.Get(ctx, sid, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Assumptions, got.Assumptions)
}

func TestScenarioService_SaveNilAssumptionsIsBaseCase(t *testing.T) {
	svc, sid := newScenarioService(t)

	rec, err := svc.Save(context.Background(), sid, &models.SaveScenarioRequest{Name: "Base"})
	require.NoError(t, err)
	assert.Equal(t, forecast.DefaultAssumptions(), rec.Assumptions)
}

func TestScenarioService_SavePresetIsTrusted(t *testing.T) {
	svc, sid := newScenarioService(t)

	ctx, wc := services.NewWarningContext(context.Background())
	rec, err := svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "2008", PresetID: "financial-crisis"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, rec.Assumptions.RealEstateIRR)

	warnings := wc.GetWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarnPresetOutOfRange, warnings[0].Code)
}

func TestScenarioService_SaveErrors(t *testing.T) {
	svc, sid := newScenarioService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: " "})
	assert.ErrorIs(t, err, services.ErrInvalidScenario)

	_, err = svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "x", PresetID: "bull-market", Assumptions: withVolatility(forecast.VolatilityLow, 1)})
	assert.ErrorIs(t, err, services.ErrInvalidScenario)

	_, err = svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "x", PresetID: "nope"})
	assert.ErrorIs(t, err, services.ErrPresetNotFound)

	_, err = svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "x", Assumptions: withVolatility(forecast.VolatilityLow, 20)})
	assert.ErrorIs(t, err, forecast.ErrInvalidAssumption)

	_, err = svc.Save(ctx, "no-session", &models.SaveScenarioRequest{Name: "x"})
	assert.ErrorIs(t, err, scenario.ErrSessionNotFound)
}

func TestScenarioService_ListAndDelete(t *testing.T) {
	svc, sid := newScenarioService(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "A"})
	require.NoError(t, err)
	_, err = svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "B"})
	require.NoError(t, err)

	list, err := svc.List(ctx, sid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)

	require.NoError(t, svc.Delete(ctx, sid, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, sid, first.ID), scenario.ErrNotFound)

	list, err = svc.List(ctx, sid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Name)
}

func TestScenarioService_EndSession(t *testing.T) {
	svc, sid := newScenarioService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(ctx, sid))
	_, err = svc.List(ctx, sid)
	assert.ErrorIs(t, err, scenario.ErrSessionNotFound)
	_, err = svc.TouchSession(ctx, sid)
	assert.ErrorIs(t, err, scenario.ErrSessionNotFound)
}

func TestScenarioService_Import(t *testing.T) {
	svc, sid := newScenarioService(t)

	ctx, wc := services.NewWarningContext(context.Background())
	rows := []models.ScenarioImportRow{
		{Line: 2, Name: "One", Assumptions: forecast.DefaultAssumptions()},
		{Line: 4, Name: "Two", Assumptions: *withVolatility(forecast.VolatilityHigh, -2)},
	}
	imported, err := svc.Import(ctx, sid, rows, []int{3})
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.Equal(t, "Two", imported[1].Name)
	assert.NotEqual(t, imported[0].ID, imported[1].ID)

	warnings := wc.GetWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarnImportRowSkipped, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "Row 3")

	list, err := svc.List(context.Background(), sid)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestScenarioService_ImportIsAllOrNothing(t *testing.T) {
	svc, sid := newScenarioService(t)

	bad1 := forecast.DefaultAssumptions()
	bad1.ReserveRatio = 1
	bad2 := forecast.DefaultAssumptions()
	bad2.HedgeFundsIRR = 30
	rows := []models.ScenarioImportRow{
		{Line: 2, Name: "Good", Assumptions: forecast.DefaultAssumptions()},
		{Line: 3, Name: "Bad", Assumptions: bad1},
		{Line: 4, Name: "Worse", Assumptions: bad2},
	}
	_, err := svc.Import(context.Background(), sid, rows, nil)
	require.ErrorIs(t, err, forecast.ErrInvalidAssumption)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "row 4")

	list, err := svc.List(context.Background(), sid)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestScenarioService_Compare(t *testing.T) {
	svc, sid := newScenarioService(t)
	ctx := context.Background()

	calm, err := svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "Calm", Assumptions: withVolatility(forecast.VolatilityLow, 4)})
	require.NoError(t, err)
	calmer, err := svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "Calmer", Assumptions: withVolatility(forecast.VolatilityLow, 1)})
	require.NoError(t, err)

	warnCtx, wc := services.NewWarningContext(ctx)
	cmp, err := svc.Compare(warnCtx, sid, &models.CompareRequest{})
	require.NoError(t, err)
	require.Len(t, cmp.Rows, 3)
	assert.Equal(t, scenario.CurrentName, cmp.Rows[0].Name)
	assert.Equal(t, calmer.ID, cmp.MostConservative.ID)
	assert.False(t, cmp.ConservativeFallback)
	assert.Nil(t, wc.GetWarnings())

	// Narrowed to one saved scenario
	cmp, err = svc.Compare(ctx, sid, &models.CompareRequest{ScenarioIDs: []string{calm.ID}})
	require.NoError(t, err)
	require.Len(t, cmp.Rows, 2)
	assert.Equal(t, calm.ID, cmp.Rows[1].ID)
	assert.Equal(t, calm.ID, cmp.MostConservative.ID)

	_, err = svc.Compare(ctx, sid, &models.CompareRequest{ScenarioIDs: []string{"missing"}})
	assert.ErrorIs(t, err, scenario.ErrNotFound)

	_, err = svc.Compare(ctx, sid, &models.CompareRequest{Current: withVolatility("wild", 0)})
	assert.ErrorIs(t, err, forecast.ErrInvalidAssumption)
}

func TestScenarioService_CompareFallbackWarns(t *testing.T) {
	svc, sid := newScenarioService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "Stormy", Assumptions: withVolatility(forecast.VolatilityHigh, -4)})
	require.NoError(t, err)
	_, err = svc.Save(ctx, sid, &models.SaveScenarioRequest{Name: "Choppy", Assumptions: withVolatility(forecast.VolatilityMedium, -1)})
	require.NoError(t, err)

	warnCtx, wc := services.NewWarningContext(ctx)
	cmp, err := svc.Compare(warnCtx, sid, &models.CompareRequest{})
	require.NoError(t, err)
	assert.True(t, cmp.ConservativeFallback)
	// Medium beats high; among medium, the lower growth wins
	assert.Equal(t, "Choppy", cmp.MostConservative.Name)

	warnings := wc.GetWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarnConservativeFallback, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "Choppy")
}

// failingBatchStore rejects every batch write
type failingBatchStore struct {
	services.ScenarioStore
}

func (failingBatchStore) SaveScenarios(ctx context.Context, sessionID string, recs []scenario.Record) error {
	return errors.New("connection reset")
}

func TestScenarioService_ImportStoreFailureSavesNothing(t *testing.T) {
	store := failingBatchStore{ScenarioStore: cache.NewSessionCache(time.Hour)}
	svc := services.NewScenarioService(store, scenario.NewComparator(forecast.DefaultModel()), presets.Default())
	ctx := context.Background()

	s, err := svc.StartSession(ctx)
	require.NoError(t, err)

	rows := []models.ScenarioImportRow{
		{Line: 2, Name: "One", Assumptions: forecast.DefaultAssumptions()},
		{Line: 3, Name: "Two", Assumptions: forecast.DefaultAssumptions()},
	}
	imported, err := svc.Import(ctx, s.ID, rows, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Nil(t, imported)

	list, err := svc.List(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// countingStore counts sweeps
type countingStore struct {
	services.ScenarioStore
	sweeps atomic.Int32
}

func (s *countingStore) Sweep(ctx context.Context) (int, error) {
	s.sweeps.Add(1)
	return 0, nil
}

func TestScenarioService_RunSweeper(t *testing.T) {
	store := &countingStore{ScenarioStore: cache.NewSessionCache(time.Hour)}
	svc := services.NewScenarioService(store, scenario.NewComparator(forecast.DefaultModel()), presets.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.RunSweeper(ctx, 5*time.Millisecond) }()

	assert.Eventually(t, func() bool { return store.sweeps.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
