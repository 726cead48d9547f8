package interfaces

import (
	"context"

	"market-pulse/internal/store"
	"market-pulse/internal/types"
)

// SeriesAcquirer resolves one instrument to a canonical price series by
// walking its configured provider fallback chain. Returns nil when no
// provider yields a usable series.
type SeriesAcquirer interface {
	Acquire(ctx context.Context, inst store.InstrumentConfig) *types.Series
}
