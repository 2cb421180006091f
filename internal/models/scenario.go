package models

import "github.com/epeers/scenarios/internal/forecast"

// ScenarioImportRow represents one named assumption set parsed from an import CSV.
// Line is the 1-based line number in the file, header included.
type ScenarioImportRow struct {
	Line        int
	Name        string
	Assumptions forecast.AssumptionSet
}
