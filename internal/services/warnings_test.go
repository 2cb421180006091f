package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/epeers/scenarios/internal/models"
	"github.com/epeers/scenarios/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarningCollector_BasicUsage(t *testing.T) {
	ctx, wc := services.NewWarningContext(context.Background())

	services.AddWarning(ctx, models.Warning{
		Code:    models.WarnPresetOutOfRange,
		Message: "test warning 1",
	})
	services.AddWarningf(ctx, models.WarnConservativeFallback, "picked %q", "Current")

	warnings := wc.GetWarnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, models.WarnPresetOutOfRange, warnings[0].Code)
	assert.Equal(t, models.WarnConservativeFallback, warnings[1].Code)
	assert.Equal(t, `picked "Current"`, warnings[1].Message)
}

func TestWarningCollector_NoCollectorNoPanic(t *testing.T) {
	// AddWarning with a plain context should not panic
	assert.NotPanics(t, func() {
		services.AddWarning(context.Background(), models.Warning{
			Code:    models.WarnImportRowSkipped,
			Message: "this should be silently dropped",
		})
	})
}

func TestWarningCollector_EmptyByDefault(t *testing.T) {
	_, wc := services.NewWarningContext(context.Background())
	assert.Nil(t, wc.GetWarnings())
}

func TestWarningCollector_ReturnsCopy(t *testing.T) {
	ctx, wc := services.NewWarningContext(context.Background())
	services.AddWarningf(ctx, models.WarnImportRowSkipped, "row %d", 4)

	first := wc.GetWarnings()
	first[0].Message = "changed"
	assert.Equal(t, "row 4", wc.GetWarnings()[0].Message)
}

func TestWarningCollector_ConcurrentSafe(t *testing.T) {
	ctx, wc := services.NewWarningContext(context.Background())

	var wg sync.WaitGroup
	n := 100
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			services.AddWarning(ctx, models.Warning{
				Code:    models.WarnImportRowSkipped,
				Message: "concurrent warning",
			})
		}()
	}
	wg.Wait()

	assert.Len(t, wc.GetWarnings(), n)
}

func TestWarningCollector_ContextPropagation(t *testing.T) {
	ctx, wc := services.NewWarningContext(context.Background())

	// Derived contexts keep the collector
	child, cancel := context.WithCancel(ctx)
	defer cancel()
	services.AddWarningf(child, models.WarnPresetOutOfRange, "from child")

	assert.Len(t, wc.GetWarnings(), 1)
}
