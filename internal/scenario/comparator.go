package scenario

import (
	"time"

	"github.com/epeers/scenarios/internal/forecast"
)

// DefaultHorizonYears is the horizon of the comparison NAV
const DefaultHorizonYears = 5

// CurrentName labels the live assumption set in a comparison
const CurrentName = "Current"

// Record is a saved assumption set. It is never modified after creation.
type Record struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Assumptions forecast.AssumptionSet `json:"assumptions"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Metric derives a comparable value from an assumption set
type Metric func(forecast.AssumptionSet) float64

// Comparator ranks assumption sets by derived metrics
type Comparator struct {
	Model forecast.Model
}

// NewComparator creates a Comparator anchored to m
func NewComparator(m forecast.Model) *Comparator {
	return &Comparator{Model: m}
}

// PortfolioIRR is the weighted IRR blend in percent, rounded half away from zero to one decimal.
func (c *Comparator) PortfolioIRR(a forecast.AssumptionSet) float64 {
	return forecast.BlendedIRR(a).Round(1).InexactFloat64()
}

// ProjectedNAV is the unrounded NAV after horizonYears.
func (c *Comparator) ProjectedNAV(a forecast.AssumptionSet, horizonYears int) float64 {
	return c.Model.NAVAt(a, horizonYears)
}

// FiveYearNAV is ProjectedNAV at DefaultHorizonYears, usable as a Metric.
func (c *Comparator) FiveYearNAV(a forecast.AssumptionSet) float64 {
	return c.ProjectedNAV(a, DefaultHorizonYears)
}

// FindBest returns the record with the largest metric. Only a strictly greater
// value replaces the running best, so the earliest record wins ties.
// ok is false when records is empty.
func FindBest(records []Record, metric Metric) (best Record, ok bool) {
	if len(records) == 0 {
		return Record{}, false
	}
	best = records[0]
	bestVal := metric(best.Assumptions)
	for _, r := range records[1:] {
		if v := metric(r.Assumptions); v > bestVal {
			best, bestVal = r, v
		}
	}
	return best, true
}

// FindMostConservative returns the low-volatility record with the lowest economic growth.
// When no record has low volatility, records are ranked by volatility (low, medium, high)
// and then by economic growth, and fallback is true. The earliest record wins ties.
func FindMostConservative(records []Record) (best Record, fallback bool, ok bool) {
	if len(records) == 0 {
		return Record{}, false, false
	}

	found := false
	for _, r := range records {
		if r.Assumptions.MarketVolatility != forecast.VolatilityLow {
			continue
		}
		if !found || r.Assumptions.EconomicGrowth < best.Assumptions.EconomicGrowth {
			best, found = r, true
		}
	}
	if found {
		return best, false, true
	}

	best = records[0]
	for _, r := range records[1:] {
		rRank, bRank := r.Assumptions.MarketVolatility.Rank(), best.Assumptions.MarketVolatility.Rank()
		if rRank < bRank || (rRank == bRank && r.Assumptions.EconomicGrowth < best.Assumptions.EconomicGrowth) {
			best = r
		}
	}
	return best, true, true
}

// Row is one line of a comparison table
type Row struct {
	ID                   string              `json:"id,omitempty"`
	Name                 string              `json:"name"`
	Current              bool                `json:"current"`
	PortfolioIRR         float64             `json:"portfolio_irr"`
	ProjectedNAV         float64             `json:"projected_nav"`
	CapitalCallFrequency int                 `json:"capital_call_frequency"`
	MarketVolatility     forecast.Volatility `json:"market_volatility"`
}

// Highlight names the record that won a category and its value
type Highlight struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Comparison is the full side-by-side view of the current set and saved scenarios
type Comparison struct {
	HorizonYears         int       `json:"horizon_years"`
	Rows                 []Row     `json:"rows"`
	BestPerformance      Highlight `json:"best_performance"`
	HighestNAV           Highlight `json:"highest_nav"`
	MostConservative     Highlight `json:"most_conservative"`
	ConservativeFallback bool      `json:"conservative_fallback"`
}

// Compare tabulates current followed by saved. The current set is always present,
// so the highlights are always defined.
func (c *Comparator) Compare(current forecast.AssumptionSet, saved []Record) Comparison {
	all := make([]Record, 0, len(saved)+1)
	all = append(all, Record{Name: CurrentName, Assumptions: current})
	all = append(all, saved...)

	cmp := Comparison{
		HorizonYears: DefaultHorizonYears,
		Rows:         make([]Row, 0, len(all)),
	}
	for i, r := range all {
		cmp.Rows = append(cmp.Rows, Row{
			ID:                   r.ID,
			Name:                 r.Name,
			Current:              i == 0,
			PortfolioIRR:         c.PortfolioIRR(r.Assumptions),
			ProjectedNAV:         c.FiveYearNAV(r.Assumptions),
			CapitalCallFrequency: r.Assumptions.CapitalCallFrequency,
			MarketVolatility:     r.Assumptions.MarketVolatility,
		})
	}

	best, _ := FindBest(all, c.PortfolioIRR)
	cmp.BestPerformance = Highlight{ID: best.ID, Name: best.Name, Value: c.PortfolioIRR(best.Assumptions)}

	highest, _ := FindBest(all, c.FiveYearNAV)
	cmp.HighestNAV = Highlight{ID: highest.ID, Name: highest.Name, Value: c.FiveYearNAV(highest.Assumptions)}

	conservative, fallback, _ := FindMostConservative(all)
	cmp.MostConservative = Highlight{ID: conservative.ID, Name: conservative.Name, Value: c.PortfolioIRR(conservative.Assumptions)}
	cmp.ConservativeFallback = fallback

	return cmp
}
