package presets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/epeers/scenarios/internal/forecast"
	"github.com/epeers/scenarios/internal/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ContainsHistoricalRegimes(t *testing.T) {
	lib := presets.Default()
	assert.Equal(t, 1, lib.Version)

	var ids []string
	for _, p := range lib.All() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"bull-market", "financial-crisis", "covid-recovery", "inflation-spike", "base-case"}, ids)
}

func TestDefault_BaseCaseMatchesDefaultAssumptions(t *testing.T) {
	p, ok := presets.Default().Get(presets.BaseCaseID)
	require.True(t, ok)
	assert.Equal(t, forecast.DefaultAssumptions(), p.Assumptions)
	assert.Equal(t, presets.SeverityNeutral, p.Severity)
}

func TestDefault_BullAndCrisisValues(t *testing.T) {
	bull, ok := presets.Default().Get("bull-market")
	require.True(t, ok)
	assert.Equal(t, 22.0, bull.Assumptions.PrivateEquityIRR)
	assert.Equal(t, 18.0, bull.Assumptions.HedgeFundsIRR)
	assert.Equal(t, 15.0, bull.Assumptions.RealEstateIRR)
	assert.Equal(t, 12.0, bull.Assumptions.InfrastructureIRR)
	assert.Equal(t, forecast.VolatilityLow, bull.Assumptions.MarketVolatility)
	assert.Equal(t, 6.0, bull.Assumptions.EconomicGrowth)
	assert.Equal(t, 1.5, bull.Assumptions.InterestRate)

	crisis, ok := presets.Default().Get("financial-crisis")
	require.True(t, ok)
	assert.Equal(t, forecast.DistributionAnnual, crisis.Assumptions.DistributionTiming)
	assert.Equal(t, 3.0, crisis.Assumptions.RealEstateIRR)
	assert.Equal(t, forecast.VolatilityHigh, crisis.Assumptions.MarketVolatility)
	assert.Equal(t, -3.0, crisis.Assumptions.EconomicGrowth)
}

func TestDefault_OnlyCrisisLeavesInteractiveRange(t *testing.T) {
	for _, p := range presets.Default().All() {
		if p.ID == "financial-crisis" {
			assert.Equal(t, []string{forecast.FieldRealEstateIRR}, p.Assumptions.OutOfRange())
			continue
		}
		assert.NoError(t, p.Assumptions.Validate(), p.ID)
	}
}

func TestGet_Unknown(t *testing.T) {
	_, ok := presets.Default().Get("dot-com-bubble")
	assert.False(t, ok)
}

func TestAll_ReturnsCopy(t *testing.T) {
	lib := presets.Default()
	all := lib.All()
	all[0].Name = "mutated"

	p, _ := lib.Get(all[0].ID)
	assert.NotEqual(t, "mutated", p.Name)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"missing version": `presets: []`,
		"duplicate id": `version: 1
presets:
  - {id: a, name: A, severity: neutral, assumptions: {distribution_timing: quarterly, market_volatility: low}}
  - {id: a, name: B, severity: neutral, assumptions: {distribution_timing: quarterly, market_volatility: low}}
`,
		"bad volatility": `version: 1
presets:
  - {id: a, name: A, severity: neutral, assumptions: {distribution_timing: quarterly, market_volatility: wild}}
`,
		"bad severity": `version: 1
presets:
  - {id: a, name: A, severity: scary, assumptions: {distribution_timing: quarterly, market_volatility: low}}
`,
		"unknown key": `version: 1
presets:
  - {id: a, name: A, severity: neutral, leverage: 2, assumptions: {distribution_timing: quarterly, market_volatility: low}}
`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := presets.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	doc := `version: 2
presets:
  - id: stagflation
    name: Stagflation
    description: Low growth with high inflation
    severity: negative
    assumptions:
      capital_call_frequency: 12
      distribution_timing: annual
      commitment_pace: 60
      reserve_ratio: 20
      private_equity_irr: 9
      hedge_funds_irr: 7
      real_estate_irr: 6
      infrastructure_irr: 8
      economic_growth: -1
      interest_rate: 8
      market_volatility: high
      inflation: 6
`
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	lib, err := presets.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, lib.Version)

	p, ok := lib.Get("stagflation")
	require.True(t, ok)
	assert.Equal(t, 8.0, p.Assumptions.InterestRate)
	assert.NoError(t, p.Assumptions.Validate())
}

func TestLoad(t *testing.T) {
	lib, err := presets.Load("")
	require.NoError(t, err)
	assert.Same(t, presets.Default(), lib)

	_, err = presets.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read presets file")
}
