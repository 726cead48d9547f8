package interfaces

import (
	"context"

	"market-pulse/internal/types"
)

// NewsCollector fetches a bounded batch of recent articles from the
// configured news provider. A missing credential or provider outage
// yields an empty list, never an error the pipeline has to handle.
type NewsCollector interface {
	Collect(ctx context.Context, limit int) ([]types.Article, error)
}
