// Package forecast fits a fixed-order autoregressive integrated moving
// average model, ARIMA(5,1,0), to a canonical close-price series and
// extends it a configurable number of steps.
package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"market-pulse/internal/types"
)

const (
	arOrder = 5
	// MinPoints is the floor under which a series is not worth fitting.
	MinPoints = 20
)

// ErrInsufficientData is returned when a series has fewer than MinPoints
// observations. Callers are expected to have checked series presence
// already; this guards the direct-call path.
var ErrInsufficientData = errors.New("insufficient data for forecasting")

// labelFormat matches the month-day axis labels the dashboard renders.
const labelFormat = "01-02"

// Forecast fits the model to series and forecasts horizon steps past the
// last observation. The returned Forecast array carries one nil per
// historical position so that Historical and Forecast both align
// positionally against Labels.
//
// Forecast labels advance by calendar day without skipping weekends or
// market holidays; a known simplification kept for equity indices.
func Forecast(series *types.Series, horizon int) (*types.ForecastSeries, error) {
	n := len(series.Points)
	if n < MinPoints {
		return nil, fmt.Errorf("%w: %s has %d points, need %d",
			ErrInsufficientData, series.InstrumentID, n, MinPoints)
	}
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}

	closes := make([]float64, n)
	for i, p := range series.Points {
		closes[i] = p.Close
	}

	// One differencing step, then an AR(5) with intercept on the diffs.
	diffs := difference(closes)
	coefs := fitAR(diffs, arOrder)

	// Recursive multi-step forecast on the differenced series,
	// re-integrated back to price level.
	lags := append([]float64(nil), diffs[len(diffs)-arOrder:]...)
	level := closes[n-1]
	forecasts := make([]float64, horizon)
	for h := 0; h < horizon; h++ {
		step := coefs[0]
		for i := 1; i <= arOrder; i++ {
			step += coefs[i] * lags[len(lags)-i]
		}
		lags = append(lags, step)
		level += step
		forecasts[h] = round2(level)
	}

	return assemble(series, forecasts), nil
}

func difference(values []float64) []float64 {
	diffs := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs[i-1] = values[i] - values[i-1]
	}
	return diffs
}

// fitAR estimates [intercept, phi_1..phi_p] by ordinary least squares.
// A rank-deficient fit (e.g. a constant series) degrades to a drift-only
// model instead of failing the run.
func fitAR(diffs []float64, p int) []float64 {
	rows := len(diffs) - p
	x := mat.NewDense(rows, p+1, nil)
	y := mat.NewVecDense(rows, nil)
	for t := 0; t < rows; t++ {
		x.Set(t, 0, 1.0)
		for i := 1; i <= p; i++ {
			x.Set(t, i, diffs[t+p-i])
		}
		y.SetVec(t, diffs[t+p])
	}

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return driftOnly(diffs, p)
	}

	coefs := make([]float64, p+1)
	for i := range coefs {
		v := beta.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return driftOnly(diffs, p)
		}
		coefs[i] = v
	}
	return coefs
}

// driftOnly is the degenerate model: intercept = mean step, no AR terms.
func driftOnly(diffs []float64, p int) []float64 {
	sum := 0.0
	for _, d := range diffs {
		sum += d
	}
	coefs := make([]float64, p+1)
	coefs[0] = sum / float64(len(diffs))
	return coefs
}

func assemble(series *types.Series, forecasts []float64) *types.ForecastSeries {
	n := len(series.Points)
	horizon := len(forecasts)

	labels := make([]string, 0, n+horizon)
	historical := make([]float64, 0, n)
	for _, pt := range series.Points {
		labels = append(labels, pt.Date.Format(labelFormat))
		historical = append(historical, round2(pt.Close))
	}

	lastDate := series.Points[n-1].Date
	merged := make([]*float64, n, n+horizon)
	for i, v := range forecasts {
		labels = append(labels, lastDate.AddDate(0, 0, i+1).Format(labelFormat))
		value := v
		merged = append(merged, &value)
	}

	return &types.ForecastSeries{
		Labels:     labels,
		Historical: historical,
		Forecast:   merged,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
