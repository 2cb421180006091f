package assistant

import (
	"fmt"
	"strings"
)

// Rule pairs a question predicate with the answer it produces
type Rule struct {
	Name     string
	Match    func(question string) bool
	Template func(s Snapshot) string
}

// DemoResponder answers from an ordered rule table. The first matching rule wins.
type DemoResponder struct {
	snapshot Snapshot
	rules    []Rule
	fallback func(s Snapshot) string
}

// NewDemoResponder builds the default rule table over s
func NewDemoResponder(s Snapshot) *DemoResponder {
	return &DemoResponder{
		snapshot: s,
		rules:    DefaultRules(),
		fallback: overviewAnswer,
	}
}

// Respond returns the canned answer for question. Matching is case-insensitive.
func (d *DemoResponder) Respond(question string) string {
	q := strings.ToLower(question)
	for _, r := range d.rules {
		if r.Match(q) {
			return r.Template(d.snapshot)
		}
	}
	return d.fallback(d.snapshot)
}

// RuleFor reports which rule answers question, or "" for the fallback
func (d *DemoResponder) RuleFor(question string) string {
	q := strings.ToLower(question)
	for _, r := range d.rules {
		if r.Match(q) {
			return r.Name
		}
	}
	return ""
}

func containsAny(keywords ...string) func(string) bool {
	return func(q string) bool {
		for _, k := range keywords {
			if strings.Contains(q, k) {
				return true
			}
		}
		return false
	}
}

// DefaultRules is the demo rule table in evaluation order
func DefaultRules() []Rule {
	return []Rule{
		{Name: "compliance", Match: containsAny("compliance", "esg", "alert", "limit"), Template: complianceAnswer},
		{Name: "liquidity", Match: containsAny("liquidity", "cash"), Template: liquidityAnswer},
		{Name: "risk", Match: containsAny("risk", "var", "concentration"), Template: riskAnswer},
		{Name: "allocation", Match: containsAny("allocation", "exposure", "exposed", "private equity"), Template: allocationAnswer},
		{Name: "performance", Match: containsAny("perform", "return", "benchmark"), Template: performanceAnswer},
		{Name: "vintage", Match: containsAny("vintage"), Template: vintageAnswer},
		{Name: "scenario", Match: containsAny("scenario", "forecast", "stress"), Template: scenarioAnswer},
	}
}

func complianceAnswer(s Snapshot) string {
	return fmt.Sprintf(`**Compliance status**

- Overall compliance score: %s%%
- Active alerts: %d
- ESG compliance: %s%%
- Concentration risk level: %s

All allocation limits are being monitored; the open alerts should be reviewed with the investment committee.`,
		num(s.ComplianceScore), s.ActiveAlerts, num(s.ESGCompliance), s.ConcentrationLevel)
}

func liquidityAnswer(s Snapshot) string {
	return fmt.Sprintf(`**Liquidity position**

- Liquidity risk: %s
- Portfolio VaR (95%%): %s%%

Most of the book sits in illiquid closed-end vehicles, so unfunded commitments should be matched against expected distributions before new commitments are made.`,
		s.LiquidityRisk, num(s.PortfolioVaR))
}

func riskAnswer(s Snapshot) string {
	return fmt.Sprintf(`**Risk profile**

- Portfolio VaR (95%%): %s%%
- Concentration risk: %s
- Liquidity risk: %s
- Vintage diversification: %s`,
		num(s.PortfolioVaR), s.ConcentrationRisk, s.LiquidityRisk, s.VintageDiversification)
}

func allocationAnswer(s Snapshot) string {
	var b strings.Builder
	b.WriteString("**Current asset allocation**\n\n")
	for _, a := range s.Allocation {
		fmt.Fprintf(&b, "- %s: %s%%\n", a.Name, num(a.Percent))
	}
	if len(s.Allocation) > 0 {
		top := s.Allocation[0]
		for _, a := range s.Allocation[1:] {
			if a.Percent > top.Percent {
				top = a
			}
		}
		fmt.Fprintf(&b, "\n%s is the largest exposure at %s%% of NAV.", top.Name, num(top.Percent))
	}
	return b.String()
}

func performanceAnswer(s Snapshot) string {
	recent := make([]string, 0, 3)
	for _, v := range s.RecentMonths(3) {
		recent = append(recent, num(v)+"%")
	}
	return fmt.Sprintf(`**Performance summary**

- Year-to-date return: %s%%
- Benchmark: %s%%
- Outperformance: +%s%%
- Last three months: %s`,
		num(s.YTDReturn), num(s.Benchmark), s.Outperformance(), strings.Join(recent, ", "))
}

func vintageAnswer(s Snapshot) string {
	return fmt.Sprintf(`**Vintage analysis**

- Best vintage IRR: %s%%
- Worst vintage IRR: %s%%
- Spread: %s%%
- Diversification: %s`,
		num(s.BestVintageIRR), num(s.WorstVintageIRR), num(s.VintageSpread), s.VintageDiversification)
}

func scenarioAnswer(Snapshot) string {
	return `**Scenario modeling**

Forecasts are driven by the asset-class IRR assumptions, market volatility and economic growth. ` +
		`Try the preset regimes (bull market, financial crisis, COVID recovery, inflation spike) and save the ones you want to compare side by side.`
}

func overviewAnswer(s Snapshot) string {
	return fmt.Sprintf(`I'm running in demo mode, so answers come from the dashboard snapshot.

The portfolio is up %s%% year to date against a %s%% benchmark, with a compliance score of %s%% and %d active alerts. `+
		`Ask about performance, allocation, risk, liquidity, vintages, compliance or scenarios.`,
		num(s.YTDReturn), num(s.Benchmark), num(s.ComplianceScore), s.ActiveAlerts)
}
