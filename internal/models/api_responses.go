package models

import (
	json "github.com/goccy/go-json"

	"github.com/epeers/scenarios/internal/assistant"
	"github.com/epeers/scenarios/internal/forecast"
	"github.com/epeers/scenarios/internal/presets"
	"github.com/epeers/scenarios/internal/scenario"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ForecastRequest represents the request body for a forecast. Missing assumptions mean the base case.
type ForecastRequest struct {
	Assumptions *forecast.AssumptionSet `json:"assumptions"`
}

// ForecastResponse carries all three projected series for one assumption set
type ForecastResponse struct {
	Assumptions     forecast.AssumptionSet     `json:"assumptions"`
	BaseYear        int                        `json:"base_year"`
	StartingNAV     float64                    `json:"starting_nav"`
	PortfolioIRR    float64                    `json:"portfolio_irr"`
	AdjustedGrowth  float64                    `json:"adjusted_growth"`
	NAV             []forecast.NAVPoint        `json:"nav"`
	CashFlows       []forecast.CashFlowPoint   `json:"cash_flows"`
	AllocationDrift []forecast.AllocationDrift `json:"allocation_drift"`
	Warnings        []Warning                  `json:"warnings,omitempty"`
}

// UpdateRequest is one field edit, e.g. {"field": "private_equity_irr", "value": 18}
type UpdateRequest struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

// ApplyRequest applies updates in order to assumptions (or the base case)
type ApplyRequest struct {
	Assumptions *forecast.AssumptionSet `json:"assumptions"`
	Updates     []UpdateRequest         `json:"updates" binding:"required"`
}

// ApplyResponse returns the updated assumption set
type ApplyResponse struct {
	Assumptions  forecast.AssumptionSet `json:"assumptions"`
	PortfolioIRR float64                `json:"portfolio_irr"`
}

// PresetListResponse represents the preset table
type PresetListResponse struct {
	Version int              `json:"version"`
	Presets []presets.Preset `json:"presets"`
}

// SaveScenarioRequest saves either explicit assumptions or a copy of a preset
type SaveScenarioRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Assumptions *forecast.AssumptionSet `json:"assumptions"`
	PresetID    string                  `json:"preset_id"`
}

// SaveScenarioResponse represents a newly saved scenario
type SaveScenarioResponse struct {
	Scenario scenario.Record `json:"scenario"`
	Warnings []Warning       `json:"warnings,omitempty"`
}

// ScenarioListResponse represents the scenarios saved in a session
type ScenarioListResponse struct {
	SessionID string            `json:"session_id"`
	Scenarios []scenario.Record `json:"scenarios"`
}

// ImportScenariosResponse represents the result of a CSV import
type ImportScenariosResponse struct {
	Imported []scenario.Record `json:"imported"`
	Warnings []Warning         `json:"warnings,omitempty"`
}

// CompareRequest compares current against the session's saved scenarios.
// ScenarioIDs narrows the saved set; empty means all.
type CompareRequest struct {
	Current     *forecast.AssumptionSet `json:"current"`
	ScenarioIDs []string                `json:"scenario_ids"`
}

// CompareResponse represents the comparison table and its highlights
type CompareResponse struct {
	scenario.Comparison
	Warnings []Warning `json:"warnings,omitempty"`
}

// AssistantModeRequest selects demo or live mode. APIKey is only read, never echoed.
type AssistantModeRequest struct {
	Kind     assistant.Kind     `json:"kind"`
	Provider assistant.Provider `json:"provider"`
	APIKey   string             `json:"api_key"`
}

// ToMode converts the request into the assistant's mode value
func (r AssistantModeRequest) ToMode() assistant.Mode {
	return assistant.Mode{Kind: r.Kind, Provider: r.Provider, APIKey: r.APIKey}
}

// ChatMessage is a prior turn supplied by the client
type ChatMessage struct {
	ID        string         `json:"id"`
	Role      assistant.Role `json:"role" binding:"required"`
	Content   string         `json:"content"`
	Timestamp *FlexibleDate  `json:"timestamp"`
}

// SendMessageRequest represents a new question plus the conversation so far
type SendMessageRequest struct {
	Mode     AssistantModeRequest `json:"mode"`
	History  []ChatMessage        `json:"history"`
	Question string               `json:"question" binding:"required"`
}

// SendMessageResponse carries the user turn as recorded and the assistant's answer
type SendMessageResponse struct {
	Question assistant.Message `json:"question"`
	Answer   assistant.Message `json:"answer"`
	HTML     string            `json:"html"`
	Mode     assistant.Kind    `json:"mode"`
}

// AssistantContextResponse exposes the prompt prefix and the metrics behind it
type AssistantContextResponse struct {
	Context  string             `json:"context"`
	Snapshot assistant.Snapshot `json:"snapshot"`
}

// SuggestionsResponse represents the quick-question catalogue
type SuggestionsResponse struct {
	Groups []assistant.SuggestionGroup `json:"groups"`
}
