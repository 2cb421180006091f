package forecast

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrInvalidAssumption is returned when an assumption set has a field outside its allowed range
// or an unknown enum value. All violations are reported together.
var ErrInvalidAssumption = errors.New("invalid assumption")

// DistributionTiming controls how often distributions are paid out
type DistributionTiming string

const (
	DistributionQuarterly DistributionTiming = "quarterly"
	DistributionAnnual    DistributionTiming = "annual"
)

// Volatility is the market volatility regime of a scenario
type Volatility string

const (
	VolatilityLow    Volatility = "low"
	VolatilityMedium Volatility = "medium"
	VolatilityHigh   Volatility = "high"
)

// Rank orders volatility regimes from calmest (0) to most volatile (2).
// Unknown values rank after high.
func (v Volatility) Rank() int {
	switch v {
	case VolatilityLow:
		return 0
	case VolatilityMedium:
		return 1
	case VolatilityHigh:
		return 2
	}
	return 3
}

// AssumptionSet holds the user-adjustable inputs of a forecast.
// Percent fields are whole percents (15 = 15%), money fields are $M.
// Treat values as immutable; use Apply to derive a modified copy.
type AssumptionSet struct {
	CapitalCallFrequency int                `json:"capital_call_frequency" yaml:"capital_call_frequency"` // months
	DistributionTiming   DistributionTiming `json:"distribution_timing" yaml:"distribution_timing"`
	CommitmentPace       float64            `json:"commitment_pace" yaml:"commitment_pace"` // annual, $M
	ReserveRatio         float64            `json:"reserve_ratio" yaml:"reserve_ratio"`
	PrivateEquityIRR     float64            `json:"private_equity_irr" yaml:"private_equity_irr"`
	HedgeFundsIRR        float64            `json:"hedge_funds_irr" yaml:"hedge_funds_irr"`
	RealEstateIRR        float64            `json:"real_estate_irr" yaml:"real_estate_irr"`
	InfrastructureIRR    float64            `json:"infrastructure_irr" yaml:"infrastructure_irr"`
	EconomicGrowth       float64            `json:"economic_growth" yaml:"economic_growth"`
	InterestRate         float64            `json:"interest_rate" yaml:"interest_rate"`
	MarketVolatility     Volatility         `json:"market_volatility" yaml:"market_volatility"`
	Inflation            float64            `json:"inflation" yaml:"inflation"`
}

// DefaultAssumptions returns the base-case assumption set used when nothing has been adjusted
func DefaultAssumptions() AssumptionSet {
	return AssumptionSet{
		CapitalCallFrequency: 12,
		DistributionTiming:   DistributionQuarterly,
		CommitmentPace:       100,
		ReserveRatio:         15,
		PrivateEquityIRR:     15,
		HedgeFundsIRR:        12,
		RealEstateIRR:        10,
		InfrastructureIRR:    8,
		EconomicGrowth:       3,
		InterestRate:         5,
		MarketVolatility:     VolatilityMedium,
		Inflation:            2.5,
	}
}

// Range is an inclusive numeric bound
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Field names used in validation messages and in update payloads
const (
	FieldCapitalCallFrequency = "capital_call_frequency"
	FieldDistributionTiming   = "distribution_timing"
	FieldCommitmentPace       = "commitment_pace"
	FieldReserveRatio         = "reserve_ratio"
	FieldPrivateEquityIRR     = "private_equity_irr"
	FieldHedgeFundsIRR        = "hedge_funds_irr"
	FieldRealEstateIRR        = "real_estate_irr"
	FieldInfrastructureIRR    = "infrastructure_irr"
	FieldEconomicGrowth       = "economic_growth"
	FieldInterestRate         = "interest_rate"
	FieldMarketVolatility     = "market_volatility"
	FieldInflation            = "inflation"
)

// FieldNames lists every field of an AssumptionSet in declaration order
var FieldNames = []string{
	FieldCapitalCallFrequency,
	FieldDistributionTiming,
	FieldCommitmentPace,
	FieldReserveRatio,
	FieldPrivateEquityIRR,
	FieldHedgeFundsIRR,
	FieldRealEstateIRR,
	FieldInfrastructureIRR,
	FieldEconomicGrowth,
	FieldInterestRate,
	FieldMarketVolatility,
	FieldInflation,
}

// Ranges are the interactive bounds of every numeric field.
var Ranges = map[string]Range{
	FieldCapitalCallFrequency: {Min: 1, Max: 24},
	FieldCommitmentPace:       {Min: 10, Max: 500},
	FieldReserveRatio:         {Min: 5, Max: 25},
	FieldPrivateEquityIRR:     {Min: 8, Max: 25},
	FieldHedgeFundsIRR:        {Min: 5, Max: 20},
	FieldRealEstateIRR:        {Min: 4, Max: 18},
	FieldInfrastructureIRR:    {Min: 4, Max: 15},
	FieldEconomicGrowth:       {Min: -5, Max: 8},
	FieldInterestRate:         {Min: 0, Max: 10},
	FieldInflation:            {Min: 1, Max: 6},
}

// numericFields lists numeric fields in declaration order so messages are stable.
func (a AssumptionSet) numericFields() []struct {
	name  string
	value float64
} {
	return []struct {
		name  string
		value float64
	}{
		{FieldCapitalCallFrequency, float64(a.CapitalCallFrequency)},
		{FieldCommitmentPace, a.CommitmentPace},
		{FieldReserveRatio, a.ReserveRatio},
		{FieldPrivateEquityIRR, a.PrivateEquityIRR},
		{FieldHedgeFundsIRR, a.HedgeFundsIRR},
		{FieldRealEstateIRR, a.RealEstateIRR},
		{FieldInfrastructureIRR, a.InfrastructureIRR},
		{FieldEconomicGrowth, a.EconomicGrowth},
		{FieldInterestRate, a.InterestRate},
		{FieldInflation, a.Inflation},
	}
}

// OutOfRange returns the names of numeric fields outside their interactive range.
func (a AssumptionSet) OutOfRange() []string {
	var out []string
	for _, f := range a.numericFields() {
		if !Ranges[f.name].Contains(f.value) {
			out = append(out, f.name)
		}
	}
	return out
}

// Validate checks every field. Out-of-range values are rejected, never clamped.
func (a AssumptionSet) Validate() error {
	var problems []string

	for _, f := range a.numericFields() {
		r := Ranges[f.name]
		if !r.Contains(f.value) {
			problems = append(problems, fmt.Sprintf("%s: %g outside [%g, %g]", f.name, f.value, r.Min, r.Max))
		}
	}

	if a.DistributionTiming != DistributionQuarterly && a.DistributionTiming != DistributionAnnual {
		problems = append(problems, fmt.Sprintf("%s: must be 'quarterly' or 'annual', got %q", FieldDistributionTiming, a.DistributionTiming))
	}
	if a.MarketVolatility.Rank() > 2 {
		problems = append(problems, fmt.Sprintf("%s: must be 'low', 'medium' or 'high', got %q", FieldMarketVolatility, a.MarketVolatility))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidAssumption, strings.Join(problems, "; "))
	}
	return nil
}

var jsonNull = []byte("null")

func isJSONNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull)
}

// UnmarshalJSON requires every field to be present and non-null, so an
// omitted field is never read as zero.
func (a *AssumptionSet) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var missing []string
	for _, name := range FieldNames {
		if raw, ok := fields[name]; !ok || isJSONNull(raw) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidAssumption, strings.Join(missing, ", "))
	}

	type plain AssumptionSet
	return json.Unmarshal(data, (*plain)(a))
}
