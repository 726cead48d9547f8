package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProviderRef names one market-data provider and the symbol it knows the
// instrument by. Order in the list is the fallback order.
type ProviderRef struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

// InstrumentConfig is one tracked market series.
type InstrumentConfig struct {
	ID        string        `yaml:"id"`
	Providers []ProviderRef `yaml:"providers"`
}

type Config struct {
	News struct {
		BaseURL      string `yaml:"base_url"`
		Countries    string `yaml:"countries"`
		Language     string `yaml:"language"`
		Limit        int    `yaml:"limit"`
		MinBodyChars int    `yaml:"min_body_chars"`
	} `yaml:"news"`
	Sentiment struct {
		Model    string `yaml:"model"`
		MaxChars int    `yaml:"max_chars"`
		// Pointer so an explicit 0 survives defaulting.
		Temperature    *float32 `yaml:"temperature"`
		PaceSeconds    int      `yaml:"pace_seconds"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
	} `yaml:"sentiment"`
	Instruments []InstrumentConfig `yaml:"instruments"`
	Benchmark   InstrumentConfig   `yaml:"benchmark"`
	Forecast    struct {
		HorizonDays int `yaml:"horizon_days"`
		WindowDays  int `yaml:"window_days"`
		MinPoints   int `yaml:"min_points"`
	} `yaml:"forecast"`
	Predictor struct {
		// Pointer so an explicit 0 survives defaulting.
		UpThreshold  *float64 `yaml:"up_threshold"`
		ArtifactPath string   `yaml:"artifact_path"`
	} `yaml:"predictor"`
	Retrain struct {
		MinPairs        int     `yaml:"min_pairs"`
		HoldoutFraction float64 `yaml:"holdout_fraction"`
		Seed            int64   `yaml:"seed"`
	} `yaml:"retrain"`
	Store struct {
		DatabasePath string `yaml:"database_path"`
		SnapshotPath string `yaml:"snapshot_path"`
	} `yaml:"store"`
}

func (c *Config) Validate() error {
	if len(c.Instruments) == 0 {
		return errors.New("instruments cannot be empty")
	}
	for _, inst := range c.Instruments {
		if inst.ID == "" {
			return errors.New("instrument id cannot be empty")
		}
		if len(inst.Providers) == 0 {
			return fmt.Errorf("instrument '%s' has no providers", inst.ID)
		}
	}
	if c.Forecast.HorizonDays <= 0 {
		return fmt.Errorf("forecast.horizon_days must be positive, got %d", c.Forecast.HorizonDays)
	}
	if c.Forecast.MinPoints < 20 {
		return fmt.Errorf("forecast.min_points must be at least 20, got %d", c.Forecast.MinPoints)
	}
	if c.Retrain.HoldoutFraction <= 0 || c.Retrain.HoldoutFraction >= 1 {
		return fmt.Errorf("retrain.holdout_fraction must be in (0,1), got %.2f", c.Retrain.HoldoutFraction)
	}
	if c.Store.DatabasePath == "" {
		return errors.New("store.database_path cannot be empty")
	}
	if c.Store.SnapshotPath == "" {
		return errors.New("store.snapshot_path cannot be empty")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://api.marketaux.com/v1/news/all"
	}
	if c.News.Countries == "" {
		c.News.Countries = "us"
	}
	if c.News.Language == "" {
		c.News.Language = "en"
	}
	if c.News.Limit == 0 {
		c.News.Limit = 10
	}
	if c.News.MinBodyChars == 0 {
		c.News.MinBodyChars = 100
	}
	if c.Sentiment.Model == "" {
		c.Sentiment.Model = "gemini-2.0-flash-lite"
	}
	if c.Sentiment.MaxChars == 0 {
		c.Sentiment.MaxChars = 1500
	}
	if c.Sentiment.Temperature == nil {
		t := float32(0.3)
		c.Sentiment.Temperature = &t
	}
	if c.Sentiment.PaceSeconds == 0 {
		c.Sentiment.PaceSeconds = 1
	}
	if c.Sentiment.TimeoutSeconds == 0 {
		c.Sentiment.TimeoutSeconds = 30
	}
	if c.Forecast.HorizonDays == 0 {
		c.Forecast.HorizonDays = 7
	}
	if c.Forecast.WindowDays == 0 {
		c.Forecast.WindowDays = 90
	}
	if c.Forecast.MinPoints == 0 {
		c.Forecast.MinPoints = 20
	}
	if c.Predictor.UpThreshold == nil {
		th := 0.1
		c.Predictor.UpThreshold = &th
	}
	if c.Predictor.ArtifactPath == "" {
		c.Predictor.ArtifactPath = "market_predictor.json"
	}
	if c.Retrain.MinPairs == 0 {
		c.Retrain.MinPairs = 20
	}
	if c.Retrain.HoldoutFraction == 0 {
		c.Retrain.HoldoutFraction = 0.2
	}
	if c.Retrain.Seed == 0 {
		c.Retrain.Seed = 42
	}
	if c.Store.DatabasePath == "" {
		c.Store.DatabasePath = "database.db"
	}
	if c.Store.SnapshotPath == "" {
		c.Store.SnapshotPath = "data/snapshot.json"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// Secrets holds the API keys read from the environment. Collected here so
// no other package reads env vars ambiently.
type Secrets struct {
	MarketauxKey    string
	GeminiKey       string
	ExchangeRateKey string
}

func LoadSecrets() Secrets {
	return Secrets{
		MarketauxKey:    os.Getenv("MARKETAUX_API_KEY"),
		GeminiKey:       os.Getenv("GEMINI_API_KEY"),
		ExchangeRateKey: os.Getenv("EXCHANGERATE_API_KEY"),
	}
}
