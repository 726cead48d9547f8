package store

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"market-pulse/internal/types"
)

// Prediction is the day's stored forecast of market direction. Keyed by
// date: re-running the pipeline for the same day replaces the row.
type Prediction struct {
	Date           string  `gorm:"primaryKey;column:prediction_date"`
	SentimentScore float64 `gorm:"column:market_sentiment_score;not null"`
	PredictedTrend string  `gorm:"column:predicted_trend;not null"`
}

// Actual is the realized market direction observed the following day.
// Insert-only: the first write for a date is ground truth.
type Actual struct {
	Date        string `gorm:"primaryKey;column:actual_date"`
	ActualTrend string `gorm:"column:actual_trend;not null"`
}

// TrainingPair joins a prediction's score with the realized trend.
type TrainingPair struct {
	SentimentScore float64
	ActualTrend    types.Trend
}

// DB wraps the prediction/actual store.
type DB struct {
	orm *gorm.DB
}

// OpenDB opens (and migrates) the sqlite store at path.
func OpenDB(path string) (*DB, error) {
	orm, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := orm.AutoMigrate(&Prediction{}, &Actual{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &DB{orm: orm}, nil
}

// UpsertPrediction inserts or replaces the prediction for date. The date
// primary key is the only concurrency guard: last writer for a date wins.
func (db *DB) UpsertPrediction(date string, score float64, trend types.Trend) error {
	p := Prediction{Date: date, SentimentScore: score, PredictedTrend: string(trend)}
	return db.orm.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "prediction_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"market_sentiment_score", "predicted_trend"}),
	}).Create(&p).Error
}

// InsertActual records the realized trend for date. A duplicate insert is
// a silent no-op; the stored outcome is never overwritten.
func (db *DB) InsertActual(date string, trend types.Trend) error {
	a := Actual{Date: date, ActualTrend: string(trend)}
	return db.orm.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actual_date"}},
		DoNothing: true,
	}).Create(&a).Error
}

// GetPrediction returns the stored prediction for date, or nil.
func (db *DB) GetPrediction(date string) (*Prediction, error) {
	var p Prediction
	err := db.orm.Where("prediction_date = ?", date).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetActual returns the stored outcome for date, or nil.
func (db *DB) GetActual(date string) (*Actual, error) {
	var a Actual
	err := db.orm.Where("actual_date = ?", date).First(&a).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// TrainingPairs returns the inner join of predictions and actuals on
// equal dates, ordered by date.
func (db *DB) TrainingPairs() ([]TrainingPair, error) {
	var rows []struct {
		MarketSentimentScore float64
		ActualTrend          string
	}
	err := db.orm.Table("predictions p").
		Select("p.market_sentiment_score, a.actual_trend").
		Joins("JOIN actuals a ON p.prediction_date = a.actual_date").
		Order("p.prediction_date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	pairs := make([]TrainingPair, 0, len(rows))
	for _, r := range rows {
		pairs = append(pairs, TrainingPair{
			SentimentScore: r.MarketSentimentScore,
			ActualTrend:    types.Trend(r.ActualTrend),
		})
	}
	return pairs, nil
}
