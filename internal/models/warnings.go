package models

// WarningCode categorizes warnings by subsystem.
// W3xxx = assumption validation and import, W4xxx = comparison.
type WarningCode string

const (
	WarnPresetOutOfRange     WarningCode = "W3001" // trusted preset value outside the interactive range
	WarnImportRowSkipped     WarningCode = "W3002" // CSV row without a name was ignored
	WarnConservativeFallback WarningCode = "W4002" // no low-volatility scenario, ranked by volatility then growth
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
