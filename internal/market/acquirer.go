package market

import (
	"context"

	"market-pulse/internal/logger"
	"market-pulse/internal/store"
	"market-pulse/internal/types"
)

// Provider is the uniform strategy interface every market-data source
// implements. Adding or removing a source for an instrument is a config
// change, not a code change.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, symbol string, windowDays int) ([]types.SeriesPoint, error)
}

// Acquirer tries an instrument's configured providers strictly in order
// and returns the first usable normalized series.
type Acquirer struct {
	providers map[string]Provider
	window    int
	minPoints int
}

func NewAcquirer(windowDays, minPoints int, providers ...Provider) *Acquirer {
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &Acquirer{providers: byName, window: windowDays, minPoints: minPoints}
}

// Acquire returns the instrument's canonical series, or nil when every
// provider fails or yields too little data. A nil series is not an error:
// the instrument is simply omitted from this run.
func (a *Acquirer) Acquire(ctx context.Context, inst store.InstrumentConfig) *types.Series {
	for _, ref := range inst.Providers {
		p, ok := a.providers[ref.Name]
		if !ok {
			logger.Warn(ctx, "Unknown market data provider, skipping",
				"instrument", inst.ID, "provider", ref.Name)
			continue
		}

		points, err := p.Fetch(ctx, ref.Symbol, a.window)
		if err != nil {
			logger.Warn(ctx, "Market data provider failed, trying next",
				"instrument", inst.ID, "provider", ref.Name, "error", err)
			continue
		}

		points = Normalize(points)
		if len(points) < a.minPoints {
			logger.Warn(ctx, "Market data provider returned too few points, trying next",
				"instrument", inst.ID, "provider", ref.Name,
				"points", len(points), "min_points", a.minPoints)
			continue
		}

		logger.Info(ctx, "Acquired market series",
			"instrument", inst.ID, "provider", ref.Name, "points", len(points))
		return &types.Series{InstrumentID: inst.ID, Points: points}
	}

	logger.Warn(ctx, "All market data providers failed", "instrument", inst.ID)
	return nil
}
