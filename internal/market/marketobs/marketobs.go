package marketobs

import (
	"context"

	"market-pulse/internal/interfaces"
	"market-pulse/internal/logger"
	"market-pulse/internal/store"
	"market-pulse/internal/trace"
	"market-pulse/internal/types"
)

// observableAcquirer wraps a SeriesAcquirer with logging & tracing
type observableAcquirer struct {
	acquirer interfaces.SeriesAcquirer
}

// Compile-time interface check
var _ interfaces.SeriesAcquirer = (*observableAcquirer)(nil)

// Wrap wraps an acquirer with observability middleware
func Wrap(acquirer interfaces.SeriesAcquirer) interfaces.SeriesAcquirer {
	return &observableAcquirer{acquirer: acquirer}
}

func (oa *observableAcquirer) Acquire(ctx context.Context, inst store.InstrumentConfig) *types.Series {
	ctx, span := trace.StartSpan(ctx, "market.Acquire")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Acquiring market series",
		"instrument", inst.ID, "providers", len(inst.Providers))

	series := oa.acquirer.Acquire(ctx, inst)

	if series == nil {
		logger.InfoSkip(ctx, 1, "Market series absent", "instrument", inst.ID)
	} else {
		logger.InfoSkip(ctx, 1, "Market series acquired",
			"instrument", inst.ID, "points", len(series.Points))
	}
	return series
}
