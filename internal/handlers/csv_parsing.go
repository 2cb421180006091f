package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/epeers/scenarios/internal/forecast"
	"github.com/epeers/scenarios/internal/models"
)

// scenarioColumns are the optional assumption columns of a scenario import CSV
var scenarioColumns = []string{
	forecast.FieldCapitalCallFrequency,
	forecast.FieldDistributionTiming,
	forecast.FieldCommitmentPace,
	forecast.FieldReserveRatio,
	forecast.FieldPrivateEquityIRR,
	forecast.FieldHedgeFundsIRR,
	forecast.FieldRealEstateIRR,
	forecast.FieldInfrastructureIRR,
	forecast.FieldEconomicGrowth,
	forecast.FieldInterestRate,
	forecast.FieldMarketVolatility,
	forecast.FieldInflation,
}

// ParseScenariosCSV parses a scenario import CSV into named assumption sets.
// Required column: name
// Optional columns: any assumption field name; missing columns or blank cells keep the base-case value.
// Rows with an empty name are skipped and their line numbers returned.
// Range validation happens downstream in the service layer.
func ParseScenariosCSV(r io.Reader) ([]models.ScenarioImportRow, []int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	if _, ok := colIdx["name"]; !ok {
		return nil, nil, fmt.Errorf("missing required column: name")
	}

	cell := func(record []string, col string) string {
		idx, ok := colIdx[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []models.ScenarioImportRow
	var skipped []int
	rowNum := 1 // header is row 1, data starts at row 2
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		name := cell(record, "name")
		if name == "" {
			skipped = append(skipped, rowNum)
			continue
		}

		a := forecast.DefaultAssumptions()
		for _, col := range scenarioColumns {
			raw := cell(record, col)
			if raw == "" {
				continue
			}
			u, err := decodeCell(col, raw)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d: %w", rowNum, err)
			}
			a = a.With(u)
		}

		rows = append(rows, models.ScenarioImportRow{
			Line:        rowNum,
			Name:        name,
			Assumptions: a,
		})
	}

	return rows, skipped, nil
}

func decodeCell(col, raw string) (forecast.Update, error) {
	switch col {
	case forecast.FieldDistributionTiming:
		return forecast.SetDistributionTiming{Timing: forecast.DistributionTiming(strings.ToLower(raw))}, nil
	case forecast.FieldMarketVolatility:
		return forecast.SetMarketVolatility{Volatility: forecast.Volatility(strings.ToLower(raw))}, nil
	case forecast.FieldCapitalCallFrequency:
		months, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", col, raw)
		}
		return forecast.SetCapitalCallFrequency{Months: months}, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", col, raw)
	}
	return forecast.DecodeUpdate(col, []byte(strconv.FormatFloat(v, 'f', -1, 64)))
}

// WriteCashFlowsCSV writes the quarterly cash-flow series as CSV
func WriteCashFlowsCSV(w io.Writer, flows []forecast.CashFlowPoint) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"period", "calls", "distributions", "net_cash_flow"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, f := range flows {
		record := []string{
			f.Period,
			strconv.FormatFloat(f.Calls, 'f', 2, 64),
			strconv.FormatFloat(f.Distributions, 'f', 2, 64),
			strconv.FormatFloat(f.NetCashFlow, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
