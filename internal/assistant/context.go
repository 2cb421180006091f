package assistant

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AllocationSlice is one asset class share of the portfolio
type AllocationSlice struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// Snapshot holds the dashboard metrics quoted to the assistant
type Snapshot struct {
	YTDReturn      float64           `json:"ytd_return"`
	Benchmark      float64           `json:"benchmark"`
	MonthlyReturns []float64         `json:"monthly_returns"`
	Allocation     []AllocationSlice `json:"allocation"`

	PortfolioVaR           float64 `json:"portfolio_var"`
	ConcentrationRisk      string  `json:"concentration_risk"`
	LiquidityRisk          string  `json:"liquidity_risk"`
	VintageDiversification string  `json:"vintage_diversification"`

	BestVintageIRR  float64 `json:"best_vintage_irr"`
	WorstVintageIRR float64 `json:"worst_vintage_irr"`
	VintageSpread   float64 `json:"vintage_spread"`

	ComplianceScore    float64 `json:"compliance_score"`
	ActiveAlerts       int     `json:"active_alerts"`
	ESGCompliance      float64 `json:"esg_compliance"`
	ConcentrationLevel string  `json:"concentration_level"`

	PortfolioType string `json:"portfolio_type"`
}

// DefaultSnapshot is the dashboard's static portfolio
func DefaultSnapshot() Snapshot {
	return Snapshot{
		YTDReturn:      17.5,
		Benchmark:      12.1,
		MonthlyReturns: []float64{8.2, 9.1, 8.8, 10.2, 11.5, 12.1, 13.2, 12.8, 14.1, 15.2, 16.8, 17.5},
		Allocation: []AllocationSlice{
			{Name: "Private Equity", Percent: 35},
			{Name: "Hedge Funds", Percent: 25},
			{Name: "Real Estate", Percent: 20},
			{Name: "Infrastructure", Percent: 15},
			{Name: "Other Alternatives", Percent: 5},
		},
		PortfolioVaR:           8.2,
		ConcentrationRisk:      "Medium",
		LiquidityRisk:          "High",
		VintageDiversification: "Good",
		BestVintageIRR:         24.8,
		WorstVintageIRR:        12.4,
		VintageSpread:          12.4,
		ComplianceScore:        94,
		ActiveAlerts:           3,
		ESGCompliance:          91,
		ConcentrationLevel:     "Medium",
		PortfolioType:          "Institutional Alternative Investments",
	}
}

// Outperformance is YTD return minus benchmark, one decimal
func (s Snapshot) Outperformance() string {
	return decimal.NewFromFloat(s.YTDReturn).Sub(decimal.NewFromFloat(s.Benchmark)).StringFixed(1)
}

// RecentMonths returns up to the last n monthly returns
func (s Snapshot) RecentMonths(n int) []float64 {
	if n > len(s.MonthlyReturns) {
		n = len(s.MonthlyReturns)
	}
	return s.MonthlyReturns[len(s.MonthlyReturns)-n:]
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildPortfolioContext renders s as the plain-text prefix handed to a completion service
func BuildPortfolioContext(s Snapshot, now time.Time) string {
	var b strings.Builder

	recent := make([]string, 0, 3)
	for _, v := range s.RecentMonths(3) {
		recent = append(recent, num(v))
	}

	b.WriteString("\nPORTFOLIO PERFORMANCE:\n")
	fmt.Fprintf(&b, "- Year-to-Date Return: %s%%\n", num(s.YTDReturn))
	fmt.Fprintf(&b, "- Benchmark Return: %s%%\n", num(s.Benchmark))
	fmt.Fprintf(&b, "- Outperformance: +%s%%\n", s.Outperformance())
	fmt.Fprintf(&b, "- Recent Monthly Performance: %s%%\n", strings.Join(recent, "%, "))

	b.WriteString("\nASSET ALLOCATION:\n")
	for _, a := range s.Allocation {
		fmt.Fprintf(&b, "- %s: %s%%\n", a.Name, num(a.Percent))
	}

	b.WriteString("\nRISK METRICS:\n")
	fmt.Fprintf(&b, "- Portfolio VaR (95%%): %s%%\n", num(s.PortfolioVaR))
	fmt.Fprintf(&b, "- Concentration Risk: %s\n", s.ConcentrationRisk)
	fmt.Fprintf(&b, "- Liquidity Risk: %s\n", s.LiquidityRisk)
	fmt.Fprintf(&b, "- Vintage Diversification: %s\n", s.VintageDiversification)

	b.WriteString("\nVINTAGE ANALYSIS:\n")
	fmt.Fprintf(&b, "- Best Vintage IRR: %s%%\n", num(s.BestVintageIRR))
	fmt.Fprintf(&b, "- Worst Vintage IRR: %s%%\n", num(s.WorstVintageIRR))
	fmt.Fprintf(&b, "- Vintage Spread (Best - Worst): %s%%\n", num(s.VintageSpread))

	b.WriteString("\nCOMPLIANCE STATUS:\n")
	fmt.Fprintf(&b, "- Overall Compliance Score: %s%%\n", num(s.ComplianceScore))
	fmt.Fprintf(&b, "- Active Alerts: %d\n", s.ActiveAlerts)
	fmt.Fprintf(&b, "- ESG Compliance: %s%%\n", num(s.ESGCompliance))
	fmt.Fprintf(&b, "- Concentration Risk Level: %s\n", s.ConcentrationLevel)

	fmt.Fprintf(&b, "\nCurrent Date: %s\n", now.Format("1/2/2006"))
	fmt.Fprintf(&b, "Portfolio Type: %s\n", s.PortfolioType)
	return b.String()
}

// SystemPrompt wraps portfolioContext in the analyst instructions
func SystemPrompt(portfolioContext string) string {
	return `You are a professional financial portfolio analyst assistant for institutional investors.
You have access to real-time portfolio data and should provide insightful, accurate financial analysis.

Current Portfolio Context:
` + portfolioContext + `

Guidelines:
- Provide concise, professional responses
- Use financial terminology appropriately
- Include specific numbers and percentages when available
- Suggest actionable insights when relevant
- Format responses clearly with bullet points or sections when helpful
- If you reference specific data, be precise about time periods and sources`
}
