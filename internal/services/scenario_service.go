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
	"github.com/epeers/scenarios/internal/scenario"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// ScenarioStore holds session-scoped scenarios. Implemented by the in-memory
// session cache and the PostgreSQL repository.
type ScenarioStore interface {
	CreateSession(ctx context.Context) (scenario.Session, error)
	TouchSession(ctx context.Context, id string) (scenario.Session, error)
	EndSession(ctx context.Context, id string) error
	SaveScenario(ctx context.Context, sessionID string, rec scenario.Record) error
	// SaveScenarios stores every record or none of them
	SaveScenarios(ctx context.Context, sessionID string, recs []scenario.Record) error
	ListScenarios(ctx context.Context, sessionID string) ([]scenario.Record, error)
	GetScenario(ctx context.Context, sessionID, id string) (scenario.Record, error)
	DeleteScenario(ctx context.Context, sessionID, id string) error
	Sweep(ctx context.Context) (int, error)
}

// ScenarioService handles saving and comparing scenarios within a session
type ScenarioService struct {
	store      ScenarioStore
	comparator *scenario.Comparator
	presets    *presets.Library
	now        func() time.Time
}

// NewScenarioService creates a new ScenarioService
func NewScenarioService(store ScenarioStore, comparator *scenario.Comparator, lib *presets.Library) *ScenarioService {
	return &ScenarioService{
		store:      store,
		comparator: comparator,
		presets:    lib,
		now:        time.Now,
	}
}

// StartSession opens a new session
func (s *ScenarioService) StartSession(ctx context.Context) (scenario.Session, error) {
	return s.store.CreateSession(ctx)
}

// TouchSession confirms the session is live and refreshes its idle timer
func (s *ScenarioService) TouchSession(ctx context.Context, sessionID string) (scenario.Session, error) {
	return s.store.TouchSession(ctx, sessionID)
}

// EndSession discards the session and everything saved in it
func (s *ScenarioService) EndSession(ctx context.Context, sessionID string) error {
	return s.store.EndSession(ctx, sessionID)
}

func (s *ScenarioService) newRecord(name string, a forecast.AssumptionSet) scenario.Record {
	return scenario.Record{
		ID:          uuid.NewString(),
		Name:        name,
		Assumptions: a,
		CreatedAt:   s.now().UTC(),
	}
}

// Save stores a named copy of either explicit assumptions or a preset.
// Explicit assumptions are validated; presets are trusted.
func (s *ScenarioService) Save(ctx context.Context, sessionID string, req *models.SaveScenarioRequest) (*scenario.Record, error) {
	defer TrackTime("SaveScenario", time.Now())

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}

	var a forecast.AssumptionSet
	switch {
	case req.PresetID != "" && req.Assumptions != nil:
		return nil, fmt.Errorf("%w: specify either assumptions or preset_id, not both", ErrInvalidScenario)
	case req.PresetID != "":
		p, ok := s.presets.Get(req.PresetID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, req.PresetID)
		}
		warnOutOfRange(ctx, p.ID, p.Assumptions)
		a = p.Assumptions
	default:
		resolved, err := resolveAssumptions(req.Assumptions)
		if err != nil {
			return nil, err
		}
		a = resolved
	}

	rec := s.newRecord(name, a)
	if err := s.store.SaveScenario(ctx, sessionID, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns the session's scenarios in save order
func (s *ScenarioService) List(ctx context.Context, sessionID string) ([]scenario.Record, error) {
	return s.store.ListScenarios(ctx, sessionID)
}

// Get returns one saved scenario
func (s *ScenarioService) Get(ctx context.Context, sessionID, id string) (*scenario.Record, error) {
	rec, err := s.store.GetScenario(ctx, sessionID, id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes one saved scenario
func (s *ScenarioService) Delete(ctx context.Context, sessionID, id string) error {
	return s.store.DeleteScenario(ctx, sessionID, id)
}

// Import validates every row, then stores them all in one step, so a bad file
// or a failed write saves nothing.
// Skipped line numbers become W3002 warnings.
func (s *ScenarioService) Import(ctx context.Context, sessionID string, rows []models.ScenarioImportRow, skipped []int) ([]scenario.Record, error) {
	defer TrackTime("ImportScenarios", time.Now())

	if _, err := s.store.TouchSession(ctx, sessionID); err != nil {
		return nil, err
	}

	var problems []string
	for _, row := range rows {
		if err := row.Assumptions.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("row %d: %v", row.Line, err))
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", forecast.ErrInvalidAssumption, strings.Join(problems, "; "))
	}

	for _, line := range skipped {
		AddWarningf(ctx, models.WarnImportRowSkipped, "Row %d has no name and was skipped.", line)
	}

	imported := make([]scenario.Record, 0, len(rows))
	for _, row := range rows {
		imported = append(imported, s.newRecord(row.Name, row.Assumptions))
	}
	if err := s.store.SaveScenarios(ctx, sessionID, imported); err != nil {
		return nil, fmt.Errorf("failed to save imported scenarios: %w", err)
	}
	return imported, nil
}

// Compare tabulates current against the session's saved scenarios, optionally narrowed to ids
func (s *ScenarioService) Compare(ctx context.Context, sessionID string, req *models.CompareRequest) (*scenario.Comparison, error) {
	defer TrackTime("CompareScenarios", time.Now())

	current, err := resolveAssumptions(req.Current)
	if err != nil {
		return nil, err
	}

	saved, err := s.store.ListScenarios(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(req.ScenarioIDs) > 0 {
		byID := make(map[string]scenario.Record, len(saved))
		for _, r := range saved {
			byID[r.ID] = r
		}
		selected := make([]scenario.Record, 0, len(req.ScenarioIDs))
		for _, id := range req.ScenarioIDs {
			r, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("%w: %s", scenario.ErrNotFound, id)
			}
			selected = append(selected, r)
		}
		saved = selected
	}

	cmp := s.comparator.Compare(current, saved)
	if cmp.ConservativeFallback {
		AddWarningf(ctx, models.WarnConservativeFallback,
			"No scenario has low market volatility; %q was chosen as the lowest-volatility, lowest-growth alternative.",
			cmp.MostConservative.Name)
	}
	return &cmp, nil
}

// RunSweeper removes idle sessions every interval until ctx is done
func (s *ScenarioService) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			removed, err := s.store.Sweep(ctx)
			if err != nil {
				log.Errorf("Session sweep failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Infof("Expired %d idle sessions", removed)
			}
		}
	}
}
