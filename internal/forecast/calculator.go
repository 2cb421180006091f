package forecast

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseYear    = 2024
	DefaultStartingNAV = 2400.0 // $M

	ForecastYears    = 10
	ForecastQuarters = ForecastYears * 4

	// OtherAlternativesIRR is the fixed return assumed for the uncovered sleeve.
	OtherAlternativesIRR = 8.0

	// distributions start after the first nine quarters (J-curve)
	distributionStartQuarter = 8

	p10Factor = 0.7
	p90Factor = 1.4
)

// AssetClass names one sleeve of the fixed alternatives taxonomy
type AssetClass string

const (
	PrivateEquity     AssetClass = "Private Equity"
	HedgeFunds        AssetClass = "Hedge Funds"
	RealEstate        AssetClass = "Real Estate"
	Infrastructure    AssetClass = "Infrastructure"
	OtherAlternatives AssetClass = "Other Alternatives"
)

// Allocation is the current and target weight of an asset class, in percent
type Allocation struct {
	Class   AssetClass
	Current float64
	Target  float64
}

// BaseAllocations is the default allocation mix. The growth blend weights mirror it;
// changing an allocation here does not feed back into BaseGrowthRate.
var BaseAllocations = []Allocation{
	{Class: PrivateEquity, Current: 35, Target: 35},
	{Class: HedgeFunds, Current: 25, Target: 25},
	{Class: RealEstate, Current: 20, Target: 20},
	{Class: Infrastructure, Current: 15, Target: 15},
	{Class: OtherAlternatives, Current: 5, Target: 5},
}

var blendWeights = map[AssetClass]decimal.Decimal{
	PrivateEquity:     decimal.RequireFromString("0.35"),
	HedgeFunds:        decimal.RequireFromString("0.25"),
	RealEstate:        decimal.RequireFromString("0.20"),
	Infrastructure:    decimal.RequireFromString("0.15"),
	OtherAlternatives: decimal.RequireFromString("0.05"),
}

// ClassIRR returns the expected annual return (percent) assumed for class c.
func (a AssumptionSet) ClassIRR(c AssetClass) float64 {
	switch c {
	case PrivateEquity:
		return a.PrivateEquityIRR
	case HedgeFunds:
		return a.HedgeFundsIRR
	case RealEstate:
		return a.RealEstateIRR
	case Infrastructure:
		return a.InfrastructureIRR
	}
	return OtherAlternativesIRR
}

// BlendedIRR is the allocation-weighted IRR in percent, computed exactly.
func BlendedIRR(a AssumptionSet) decimal.Decimal {
	total := decimal.Zero
	for _, alloc := range BaseAllocations {
		total = total.Add(decimal.NewFromFloat(a.ClassIRR(alloc.Class)).Mul(blendWeights[alloc.Class]))
	}
	return total
}

// BaseGrowthRate is the weighted IRR blend as a fraction (0.1185 for 11.85%).
func BaseGrowthRate(a AssumptionSet) float64 {
	return BlendedIRR(a).Div(decimal.NewFromInt(100)).InexactFloat64()
}

// MarketImpactFactor damps or boosts growth by volatility regime.
func MarketImpactFactor(v Volatility) float64 {
	switch v {
	case VolatilityHigh:
		return 0.85
	case VolatilityLow:
		return 1.15
	}
	return 1.0
}

// EconomicImpactFactor passes 30% of macro growth through to NAV growth.
func EconomicImpactFactor(growth float64) float64 {
	return 1 + (growth/100)*0.3
}

// AdjustedGrowth is the annual NAV growth rate after market and economic adjustments.
func AdjustedGrowth(a AssumptionSet) float64 {
	return BaseGrowthRate(a) * MarketImpactFactor(a.MarketVolatility) * EconomicImpactFactor(a.EconomicGrowth)
}

// NAVPoint is one year of the NAV projection. P10 and P90 are a fixed
// proportional band around NAV, not percentiles of a simulated distribution.
type NAVPoint struct {
	Year int     `json:"year"`
	NAV  float64 `json:"nav"`
	P10  float64 `json:"p10"`
	P90  float64 `json:"p90"`
}

// CashFlowPoint is one quarter of the cash-flow projection.
// Calls are outflows and stored negative; NetCashFlow = Distributions + Calls.
type CashFlowPoint struct {
	Period        string  `json:"period"`
	Calls         float64 `json:"calls"`
	Distributions float64 `json:"distributions"`
	NetCashFlow   float64 `json:"net_cash_flow"`
}

// AllocationDrift is the projected allocation of one asset class
type AllocationDrift struct {
	AssetClass       AssetClass `json:"asset_class"`
	CurrentPercent   float64    `json:"current_percent"`
	TargetPercent    float64    `json:"target_percent"`
	ProjectedPercent float64    `json:"projected_percent"`
	DriftPercent     float64    `json:"drift_percent"`
}

// Forecast bundles the three projections derived from one assumption set
type Forecast struct {
	AdjustedGrowth  float64           `json:"adjusted_growth"`
	NAV             []NAVPoint        `json:"nav"`
	CashFlows       []CashFlowPoint   `json:"cash_flows"`
	AllocationDrift []AllocationDrift `json:"allocation_drift"`
}

// Model holds the external constants a projection is anchored to.
type Model struct {
	BaseYear    int
	StartingNAV float64 // $M
}

// DefaultModel anchors projections at $2.4B in 2024
func DefaultModel() Model {
	return Model{BaseYear: DefaultBaseYear, StartingNAV: DefaultStartingNAV}
}

// NAVAt returns the unrounded NAV after the given number of years.
func (m Model) NAVAt(a AssumptionSet, years int) float64 {
	return m.StartingNAV * math.Pow(1+AdjustedGrowth(a), float64(years))
}

// ProjectNAV returns ForecastYears points starting at BaseYear, rounded to whole $M.
func (m Model) ProjectNAV(a AssumptionSet) []NAVPoint {
	points := make([]NAVPoint, 0, ForecastYears)
	for i := 0; i < ForecastYears; i++ {
		nav := m.NAVAt(a, i+1)
		points = append(points, NAVPoint{
			Year: m.BaseYear + i,
			NAV:  round(nav, 0),
			P10:  round(nav*p10Factor, 0),
			P90:  round(nav*p90Factor, 0),
		})
	}
	return points
}

// CallInterval is the number of quarters between capital calls.
// A non-positive frequency is treated as a call every quarter.
func CallInterval(capitalCallFrequency int) int {
	if capitalCallFrequency < 1 {
		return 1
	}
	interval := int(math.Round(12 / float64(capitalCallFrequency)))
	if interval < 1 {
		return 1
	}
	return interval
}

// ProjectCashFlows returns ForecastQuarters quarterly points, rounded to cents of $M.
func (m Model) ProjectCashFlows(a AssumptionSet) []CashFlowPoint {
	interval := CallInterval(a.CapitalCallFrequency)
	points := make([]CashFlowPoint, 0, ForecastQuarters)
	for i := 0; i < ForecastQuarters; i++ {
		var call, dist float64
		if i%interval == 0 {
			call = a.CommitmentPace * 0.25
		}
		if i > distributionStartQuarter {
			dist = a.CommitmentPace * 0.15 * (1 + float64(i)*0.02)
		}
		calls := round(-call, 2)
		distributions := round(dist, 2)
		points = append(points, CashFlowPoint{
			Period:        QuarterLabel(m.BaseYear, i),
			Calls:         calls,
			Distributions: distributions,
			NetCashFlow:   round(distributions+calls, 2),
		})
	}
	return points
}

// QuarterLabel names quarter index i (0-based) counted from the start of baseYear, e.g. "Q3 2025".
func QuarterLabel(baseYear, i int) string {
	return fmt.Sprintf("Q%d %d", i%4+1, baseYear+i/4)
}

// ProjectAllocationDrift moves each class away from its current weight by half of its
// return spread against the unweighted mean of all class returns.
func ProjectAllocationDrift(a AssumptionSet) []AllocationDrift {
	sum := decimal.Zero
	for _, alloc := range BaseAllocations {
		sum = sum.Add(decimal.NewFromFloat(a.ClassIRR(alloc.Class)))
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(BaseAllocations))))
	half := decimal.RequireFromString("0.5")

	out := make([]AllocationDrift, 0, len(BaseAllocations))
	for _, alloc := range BaseAllocations {
		drift := decimal.NewFromFloat(a.ClassIRR(alloc.Class)).Sub(avg).Mul(half)
		projected := decimal.NewFromFloat(alloc.Current).Add(drift)
		if projected.IsNegative() {
			projected = decimal.Zero
		}
		// Half-way values round away from zero in both directions, so a drift of -0.05 reports -0.1.
		out = append(out, AllocationDrift{
			AssetClass:       alloc.Class,
			CurrentPercent:   alloc.Current,
			TargetPercent:    alloc.Target,
			ProjectedPercent: projected.Round(1).InexactFloat64(),
			DriftPercent:     drift.Round(1).InexactFloat64(),
		})
	}
	return out
}

// Forecast computes all three projections for a.
func (m Model) Forecast(a AssumptionSet) Forecast {
	return Forecast{
		AdjustedGrowth:  AdjustedGrowth(a),
		NAV:             m.ProjectNAV(a),
		CashFlows:       m.ProjectCashFlows(a),
		AllocationDrift: ProjectAllocationDrift(a),
	}
}

// round rounds half away from zero
func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
