package scenario_test

import (
	"testing"

	"github.com/epeers/scenarios/internal/forecast"
	"github.com/epeers/scenarios/internal/presets"
	"github.com/epeers/scenarios/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presetAssumptions(t *testing.T, id string) forecast.AssumptionSet {
	t.Helper()
	p, ok := presets.Default().Get(id)
	require.True(t, ok, "preset %s", id)
	return p.Assumptions
}

func record(id string, a forecast.AssumptionSet) scenario.Record {
	return scenario.Record{ID: id, Name: id, Assumptions: a}
}

func TestPortfolioIRR_Presets(t *testing.T) {
	c := scenario.NewComparator(forecast.DefaultModel())

	cases := map[string]float64{
		"base-case":        11.9, // 11.85
		"bull-market":      17.4,
		"financial-crisis": 6.0,  // 5.95
		"covid-recovery":   10.1, // 10.05
		"inflation-spike":  10.0, // 9.95
	}
	for id, want := range cases {
		assert.Equal(t, want, c.PortfolioIRR(presetAssumptions(t, id)), id)
	}
}

func TestPortfolioIRR_BullBeatsCrisis(t *testing.T) {
	c := scenario.NewComparator(forecast.DefaultModel())
	assert.Greater(t,
		c.PortfolioIRR(presetAssumptions(t, "bull-market")),
		c.PortfolioIRR(presetAssumptions(t, "financial-crisis")))
}

func TestProjectedNAV(t *testing.T) {
	c := scenario.NewComparator(forecast.DefaultModel())

	assert.InDelta(t, 4221.4409, c.ProjectedNAV(forecast.DefaultAssumptions(), 5), 1e-3)
	assert.InDelta(t, 6064.6507, c.FiveYearNAV(presetAssumptions(t, "bull-market")), 1e-3)
	assert.InDelta(t, 3064.8239, c.FiveYearNAV(presetAssumptions(t, "financial-crisis")), 1e-3)
	assert.Equal(t, forecast.DefaultStartingNAV, c.ProjectedNAV(forecast.DefaultAssumptions(), 0))
}

func TestProjectedNAV_MatchesSeries(t *testing.T) {
	m := forecast.DefaultModel()
	c := scenario.NewComparator(m)
	a := presetAssumptions(t, "covid-recovery")

	series := m.ProjectNAV(a)
	assert.InDelta(t, series[4].NAV, c.FiveYearNAV(a), 0.5)
}

func TestFindBest_SingleElement(t *testing.T) {
	only := record("only", forecast.DefaultAssumptions())

	best, ok := scenario.FindBest([]scenario.Record{only}, forecast.BaseGrowthRate)
	require.True(t, ok)
	assert.Equal(t, only, best)
}

func TestFindBest_Empty(t *testing.T) {
	_, ok := scenario.FindBest(nil, forecast.BaseGrowthRate)
	assert.False(t, ok)
}

func TestFindBest_FirstWinsTies(t *testing.T) {
	a := forecast.DefaultAssumptions()
	records := []scenario.Record{record("first", a), record("second", a), record("third", a)}

	best, ok := scenario.FindBest(records, forecast.BaseGrowthRate)
	require.True(t, ok)
	assert.Equal(t, "first", best.ID)
}

func TestFindBest_PicksLargest(t *testing.T) {
	c := scenario.NewComparator(forecast.DefaultModel())
	records := []scenario.Record{
		record("crisis", presetAssumptions(t, "financial-crisis")),
		record("bull", presetAssumptions(t, "bull-market")),
		record("base", presetAssumptions(t, "base-case")),
	}

	best, _ := scenario.FindBest(records, c.PortfolioIRR)
	assert.Equal(t, "bull", best.ID)

	highest, _ := scenario.FindBest(records, c.FiveYearNAV)
	assert.Equal(t, "bull", highest.ID)
}

func TestFindMostConservative_LowestGrowthAmongLowVolatility(t *testing.T) {
	calm := forecast.DefaultAssumptions()
	calm.MarketVolatility = forecast.VolatilityLow
	calm.EconomicGrowth = 4

	calmer := calm
	calmer.EconomicGrowth = 1

	shaky := forecast.DefaultAssumptions()
	shaky.MarketVolatility = forecast.VolatilityHigh
	shaky.EconomicGrowth = -4

	records := []scenario.Record{record("shaky", shaky), record("calm", calm), record("calmer", calmer)}

	best, fallback, ok := scenario.FindMostConservative(records)
	require.True(t, ok)
	assert.False(t, fallback)
	assert.Equal(t, "calmer", best.ID)
}

func TestFindMostConservative_TieKeepsFirst(t *testing.T) {
	calm := forecast.DefaultAssumptions()
	calm.MarketVolatility = forecast.VolatilityLow

	best, _, _ := scenario.FindMostConservative([]scenario.Record{record("a", calm), record("b", calm)})
	assert.Equal(t, "a", best.ID)
}

func TestFindMostConservative_FallbackWithoutLowVolatility(t *testing.T) {
	records := []scenario.Record{
		record("crisis", presetAssumptions(t, "financial-crisis")),   // high, -3
		record("inflation", presetAssumptions(t, "inflation-spike")), // medium, 1
		record("base", presetAssumptions(t, "base-case")),            // medium, 3
		record("covid", presetAssumptions(t, "covid-recovery")),      // high, 2
	}

	best, fallback, ok := scenario.FindMostConservative(records)
	require.True(t, ok)
	assert.True(t, fallback)
	assert.Equal(t, "inflation", best.ID)
}

func TestFindMostConservative_Empty(t *testing.T) {
	_, _, ok := scenario.FindMostConservative(nil)
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	c := scenario.NewComparator(forecast.DefaultModel())
	saved := []scenario.Record{
		record("bull", presetAssumptions(t, "bull-market")),
		record("crisis", presetAssumptions(t, "financial-crisis")),
	}

	cmp := c.Compare(forecast.DefaultAssumptions(), saved)

	require.Len(t, cmp.Rows, 3)
	assert.True(t, cmp.Rows[0].Current)
	assert.Equal(t, scenario.CurrentName, cmp.Rows[0].Name)
	assert.Equal(t, 11.9, cmp.Rows[0].PortfolioIRR)
	assert.False(t, cmp.Rows[1].Current)
	assert.Equal(t, 8, cmp.Rows[1].CapitalCallFrequency)
	assert.Equal(t, forecast.VolatilityHigh, cmp.Rows[2].MarketVolatility)
	assert.Equal(t, scenario.DefaultHorizonYears, cmp.HorizonYears)

	assert.Equal(t, "bull", cmp.BestPerformance.ID)
	assert.Equal(t, 17.4, cmp.BestPerformance.Value)
	assert.Equal(t, "bull", cmp.HighestNAV.ID)
	assert.Equal(t, "bull", cmp.MostConservative.ID)
	assert.False(t, cmp.ConservativeFallback)
}

func TestCompare_CurrentOnly(t *testing.T) {
	c := scenario.NewComparator(forecast.DefaultModel())
	cmp := c.Compare(forecast.DefaultAssumptions(), nil)

	require.Len(t, cmp.Rows, 1)
	assert.Equal(t, scenario.CurrentName, cmp.BestPerformance.Name)
	assert.Equal(t, scenario.CurrentName, cmp.HighestNAV.Name)
	assert.Equal(t, scenario.CurrentName, cmp.MostConservative.Name)
	assert.True(t, cmp.ConservativeFallback)
}
