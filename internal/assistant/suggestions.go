package assistant

// SuggestionGroup is a category of canned questions
type SuggestionGroup struct {
	Category string   `json:"category"`
	Queries  []string `json:"queries"`
}

// QuerySuggestions returns the quick-question catalogue
func QuerySuggestions() []SuggestionGroup {
	return []SuggestionGroup{
		{
			Category: "Performance",
			Queries: []string{
				"Summarize our portfolio performance this year",
				"How are we performing vs benchmark?",
				"What's our best performing asset class?",
				"Show me our monthly returns trend",
			},
		},
		{
			Category: "Risk & Exposure",
			Queries: []string{
				"What's our current risk level?",
				"Show me our geographic allocation",
				"What's our concentration risk status?",
				"How exposed are we to private equity?",
			},
		},
		{
			Category: "Compliance",
			Queries: []string{
				"What compliance alerts do we have?",
				"Are we within allocation limits?",
				"Show me our ESG compliance score",
				"What's our liquidity position?",
			},
		},
	}
}
