package forecast

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Update changes exactly one field of an AssumptionSet.
// The set of implementations is closed: one type per field.
type Update interface {
	Field() string
	apply(*AssumptionSet)
}

type SetCapitalCallFrequency struct{ Months int }
type SetDistributionTiming struct{ Timing DistributionTiming }
type SetCommitmentPace struct{ Millions float64 }
type SetReserveRatio struct{ Percent float64 }
type SetPrivateEquityIRR struct{ Percent float64 }
type SetHedgeFundsIRR struct{ Percent float64 }
type SetRealEstateIRR struct{ Percent float64 }
type SetInfrastructureIRR struct{ Percent float64 }
type SetEconomicGrowth struct{ Percent float64 }
type SetInterestRate struct{ Percent float64 }
type SetMarketVolatility struct{ Volatility Volatility }
type SetInflation struct{ Percent float64 }

func (SetCapitalCallFrequency) Field() string { return FieldCapitalCallFrequency }
func (SetDistributionTiming) Field() string   { return FieldDistributionTiming }
func (SetCommitmentPace) Field() string       { return FieldCommitmentPace }
func (SetReserveRatio) Field() string         { return FieldReserveRatio }
func (SetPrivateEquityIRR) Field() string     { return FieldPrivateEquityIRR }
func (SetHedgeFundsIRR) Field() string        { return FieldHedgeFundsIRR }
func (SetRealEstateIRR) Field() string        { return FieldRealEstateIRR }
func (SetInfrastructureIRR) Field() string    { return FieldInfrastructureIRR }
func (SetEconomicGrowth) Field() string       { return FieldEconomicGrowth }
func (SetInterestRate) Field() string         { return FieldInterestRate }
func (SetMarketVolatility) Field() string     { return FieldMarketVolatility }
func (SetInflation) Field() string            { return FieldInflation }

func (u SetCapitalCallFrequency) apply(a *AssumptionSet) { a.CapitalCallFrequency = u.Months }
func (u SetDistributionTiming) apply(a *AssumptionSet)   { a.DistributionTiming = u.Timing }
func (u SetCommitmentPace) apply(a *AssumptionSet)       { a.CommitmentPace = u.Millions }
func (u SetReserveRatio) apply(a *AssumptionSet)         { a.ReserveRatio = u.Percent }
func (u SetPrivateEquityIRR) apply(a *AssumptionSet)     { a.PrivateEquityIRR = u.Percent }
func (u SetHedgeFundsIRR) apply(a *AssumptionSet)        { a.HedgeFundsIRR = u.Percent }
func (u SetRealEstateIRR) apply(a *AssumptionSet)        { a.RealEstateIRR = u.Percent }
func (u SetInfrastructureIRR) apply(a *AssumptionSet)    { a.InfrastructureIRR = u.Percent }
func (u SetEconomicGrowth) apply(a *AssumptionSet)       { a.EconomicGrowth = u.Percent }
func (u SetInterestRate) apply(a *AssumptionSet)         { a.InterestRate = u.Percent }
func (u SetMarketVolatility) apply(a *AssumptionSet)     { a.MarketVolatility = u.Volatility }
func (u SetInflation) apply(a *AssumptionSet)            { a.Inflation = u.Percent }

// Apply returns a copy of a with the updates applied in order.
// The result is validated; a is never modified.
func (a AssumptionSet) Apply(updates ...Update) (AssumptionSet, error) {
	next := a.With(updates...)
	if err := next.Validate(); err != nil {
		return a, err
	}
	return next, nil
}

// With returns a copy of a with the updates applied and no validation.
// Used for bulk input that is validated later as a whole.
func (a AssumptionSet) With(updates ...Update) AssumptionSet {
	next := a
	for _, u := range updates {
		u.apply(&next)
	}
	return next
}

// DecodeUpdate builds the typed update for field from its raw JSON value.
// A missing or null value is rejected rather than read as zero.
func DecodeUpdate(field string, raw json.RawMessage) (Update, error) {
	if isJSONNull(raw) {
		return nil, fmt.Errorf("%w: %s requires a value", ErrInvalidAssumption, field)
	}

	switch field {
	case FieldCapitalCallFrequency:
		var months int
		if err := json.Unmarshal(raw, &months); err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidAssumption, field, err)
		}
		return SetCapitalCallFrequency{Months: months}, nil
	case FieldDistributionTiming:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: %s must be a string: %v", ErrInvalidAssumption, field, err)
		}
		return SetDistributionTiming{Timing: DistributionTiming(s)}, nil
	case FieldMarketVolatility:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: %s must be a string: %v", ErrInvalidAssumption, field, err)
		}
		return SetMarketVolatility{Volatility: Volatility(s)}, nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		if _, known := Ranges[field]; known {
			return nil, fmt.Errorf("%w: %s must be a number: %v", ErrInvalidAssumption, field, err)
		}
	}

	switch field {
	case FieldCommitmentPace:
		return SetCommitmentPace{Millions: v}, nil
	case FieldReserveRatio:
		return SetReserveRatio{Percent: v}, nil
	case FieldPrivateEquityIRR:
		return SetPrivateEquityIRR{Percent: v}, nil
	case FieldHedgeFundsIRR:
		return SetHedgeFundsIRR{Percent: v}, nil
	case FieldRealEstateIRR:
		return SetRealEstateIRR{Percent: v}, nil
	case FieldInfrastructureIRR:
		return SetInfrastructureIRR{Percent: v}, nil
	case FieldEconomicGrowth:
		return SetEconomicGrowth{Percent: v}, nil
	case FieldInterestRate:
		return SetInterestRate{Percent: v}, nil
	case FieldInflation:
		return SetInflation{Percent: v}, nil
	}
	return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidAssumption, field)
}
