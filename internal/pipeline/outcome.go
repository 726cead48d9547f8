package pipeline

import (
	"context"
	"time"

	"market-pulse/internal/logger"
	"market-pulse/internal/types"
)

// ObserveOutcome records the realized market direction for date by
// comparing the benchmark instrument's close on that date with the prior
// close. No data for the date (weekend, holiday, provider outage) is a
// skip, not a failure; an existing row is never overwritten.
func (p *Pipeline) ObserveOutcome(ctx context.Context, date time.Time) error {
	day := date.Format(dateFormat)
	logger.Stage(ctx, "outcome", "start", "date", day)

	series := p.acquirer.Acquire(ctx, p.cfg.Benchmark)
	if series == nil {
		logger.Warn(ctx, "Benchmark series unavailable, skipping outcome", "date", day)
		return nil
	}

	idx := -1
	for i, pt := range series.Points {
		if pt.Date.Format(dateFormat) == day {
			idx = i
			break
		}
	}
	if idx < 1 {
		logger.Warn(ctx, "No benchmark close for date, skipping outcome",
			"date", day, "benchmark", p.cfg.Benchmark.ID)
		return nil
	}

	trend := types.TrendDown
	if series.Points[idx].Close > series.Points[idx-1].Close {
		trend = types.TrendUp
	}

	if err := p.db.InsertActual(day, trend); err != nil {
		return err
	}

	logger.Stage(ctx, "outcome", "done", "date", day, "trend", string(trend))
	return nil
}
