package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/scenarios/internal/forecast"
	"github.com/epeers/scenarios/internal/models"
	"github.com/epeers/scenarios/internal/presets"
)

var ErrPresetNotFound = errors.New("preset not found")

// ForecastService runs the calculator over submitted or preset assumptions
type ForecastService struct {
	model   forecast.Model
	presets *presets.Library
}

// NewForecastService creates a new ForecastService
func NewForecastService(model forecast.Model, lib *presets.Library) *ForecastService {
	return &ForecastService{
		model:   model,
		presets: lib,
	}
}

// Model returns the calculator anchors in use
func (s *ForecastService) Model() forecast.Model {
	return s.model
}

// resolveAssumptions returns a (validated) or the base case when a is nil
func resolveAssumptions(a *forecast.AssumptionSet) (forecast.AssumptionSet, error) {
	if a == nil {
		return forecast.DefaultAssumptions(), nil
	}
	if err := a.Validate(); err != nil {
		return forecast.AssumptionSet{}, err
	}
	return *a, nil
}

// warnOutOfRange records a W3001 warning when trusted preset data leaves the interactive ranges
func warnOutOfRange(ctx context.Context, presetID string, a forecast.AssumptionSet) {
	if fields := a.OutOfRange(); len(fields) > 0 {
		AddWarningf(ctx, models.WarnPresetOutOfRange,
			"Preset %q sets %s outside the interactive range; values are used as given.",
			presetID, strings.Join(fields, ", "))
	}
}

func (s *ForecastService) build(a forecast.AssumptionSet) *models.ForecastResponse {
	f := s.model.Forecast(a)
	return &models.ForecastResponse{
		Assumptions:     a,
		BaseYear:        s.model.BaseYear,
		StartingNAV:     s.model.StartingNAV,
		PortfolioIRR:    forecast.BlendedIRR(a).Round(1).InexactFloat64(),
		AdjustedGrowth:  f.AdjustedGrowth,
		NAV:             f.NAV,
		CashFlows:       f.CashFlows,
		AllocationDrift: f.AllocationDrift,
	}
}

// Forecast validates a and projects all three series. A nil a forecasts the base case.
func (s *ForecastService) Forecast(ctx context.Context, a *forecast.AssumptionSet) (*models.ForecastResponse, error) {
	defer TrackTime("Forecast", time.Now())

	assumptions, err := resolveAssumptions(a)
	if err != nil {
		return nil, err
	}
	return s.build(assumptions), nil
}

// ForecastPreset projects a preset. Presets are trusted and skip range validation.
func (s *ForecastService) ForecastPreset(ctx context.Context, id string) (*models.ForecastResponse, error) {
	defer TrackTime("ForecastPreset", time.Now())

	p, ok := s.presets.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
	}
	warnOutOfRange(ctx, p.ID, p.Assumptions)
	return s.build(p.Assumptions), nil
}

// ListPresets returns the preset table
func (s *ForecastService) ListPresets() models.PresetListResponse {
	return models.PresetListResponse{
		Version: s.presets.Version,
		Presets: s.presets.All(),
	}
}

// GetPreset looks up a preset by id
func (s *ForecastService) GetPreset(id string) (presets.Preset, error) {
	p, ok := s.presets.Get(id)
	if !ok {
		return presets.Preset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
	}
	return p, nil
}

// Apply decodes each update and applies them in order. The result must pass validation.
func (s *ForecastService) Apply(ctx context.Context, req *models.ApplyRequest) (*models.ApplyResponse, error) {
	base, err := resolveAssumptions(req.Assumptions)
	if err != nil {
		return nil, err
	}

	updates := make([]forecast.Update, 0, len(req.Updates))
	for i, u := range req.Updates {
		decoded, err := forecast.DecodeUpdate(u.Field, u.Value)
		if err != nil {
			return nil, fmt.Errorf("updates[%d]: %w", i, err)
		}
		updates = append(updates, decoded)
	}

	next, err := base.Apply(updates...)
	if err != nil {
		return nil, err
	}
	return &models.ApplyResponse{
		Assumptions:  next,
		PortfolioIRR: forecast.BlendedIRR(next).Round(1).InexactFloat64(),
	}, nil
}
