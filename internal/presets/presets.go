package presets

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/epeers/scenarios/internal/forecast"
	"gopkg.in/yaml.v2"
)

//go:embed presets.yaml
var embedded []byte

// Severity tags how a preset regime reads for the portfolio
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityNegative Severity = "negative"
	SeverityWarning  Severity = "warning"
	SeverityNeutral  Severity = "neutral"
)

// BaseCaseID names the preset that matches the default assumptions
const BaseCaseID = "base-case"

// Preset is a named, complete assumption set for a historical market regime
type Preset struct {
	ID          string                 `json:"id" yaml:"id"`
	Name        string                 `json:"name" yaml:"name"`
	Description string                 `json:"description" yaml:"description"`
	Severity    Severity               `json:"severity" yaml:"severity"`
	Assumptions forecast.AssumptionSet `json:"assumptions" yaml:"assumptions"`
}

// Library is an immutable, versioned preset table
type Library struct {
	Version int      `yaml:"version"`
	Presets []Preset `yaml:"presets"`

	byID map[string]int
}

// Parse decodes a preset document and checks its structure.
// Numeric fields are taken as written; presets may sit outside the interactive ranges.
func Parse(data []byte) (*Library, error) {
	lib := &Library{}
	if err := yaml.UnmarshalStrict(data, lib); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	if lib.Version < 1 {
		return nil, fmt.Errorf("presets: version must be >= 1, got %d", lib.Version)
	}

	lib.byID = make(map[string]int, len(lib.Presets))
	for i, p := range lib.Presets {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("presets[%d]: id and name are required", i)
		}
		if _, dup := lib.byID[p.ID]; dup {
			return nil, fmt.Errorf("presets[%d]: duplicate id %q", i, p.ID)
		}
		a := p.Assumptions
		if a.DistributionTiming != forecast.DistributionQuarterly && a.DistributionTiming != forecast.DistributionAnnual {
			return nil, fmt.Errorf("preset %q: invalid distribution_timing %q", p.ID, a.DistributionTiming)
		}
		if a.MarketVolatility.Rank() > 2 {
			return nil, fmt.Errorf("preset %q: invalid market_volatility %q", p.ID, a.MarketVolatility)
		}
		switch p.Severity {
		case SeverityPositive, SeverityNegative, SeverityWarning, SeverityNeutral:
		default:
			return nil, fmt.Errorf("preset %q: invalid severity %q", p.ID, p.Severity)
		}
		lib.byID[p.ID] = i
	}
	return lib, nil
}

// LoadFile reads a preset document from disk
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}
	return Parse(data)
}

// Load returns the library at path, or the built-in table when path is empty
func Load(path string) (*Library, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns the built-in preset table
func Default() *Library {
	defaultOnce.Do(func() {
		lib, err := Parse(embedded)
		if err != nil {
			panic(err)
		}
		defaultLib = lib
	})
	return defaultLib
}

// All returns the presets in table order. The slice is a copy.
func (l *Library) All() []Preset {
	out := make([]Preset, len(l.Presets))
	copy(out, l.Presets)
	return out
}

// Get looks up a preset by id
func (l *Library) Get(id string) (Preset, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Preset{}, false
	}
	return l.Presets[i], true
}
