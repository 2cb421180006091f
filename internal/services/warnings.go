package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/epeers/scenarios/internal/models"
)

type warningContextKey struct{}

// WarningCollector accumulates warnings during a service call chain.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext returns a context carrying a fresh WarningCollector,
// plus a reference to the collector so the handler can retrieve warnings later.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// AddWarning appends a warning to the collector in ctx.
// If ctx has no collector, the call is a no-op.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, w)
}

// AddWarningf formats the message and appends it under code
func AddWarningf(ctx context.Context, code models.WarningCode, format string, args ...any) {
	AddWarning(ctx, models.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// GetWarnings returns a copy of all collected warnings, or nil if there are none.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if len(wc.warnings) == 0 {
		return nil
	}
	out := make([]models.Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}
