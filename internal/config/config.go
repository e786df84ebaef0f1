package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 0.06

	// WorldScale is how many screen pixels one world unit covers in the 2D demo.
	WorldScale = 24.0

	MinRadius    = 0.05
	MinDuration  = 0.05
	MinTimeScale = 0.05
	MaxTimeScale = 8.0

	// ShedWindow is how long a shed effect is given to fade out.
	ShedWindow = 0.12
	// ShedFraction caps the share of live effects shortened in one tick.
	ShedFraction = 0.2

	DefaultBaseFadeRate = 1.0

	ProjectileResidualLife = 0.05
	ProjectileWobble       = 0.15
	ProjectileSpeed        = 18.0
	ParticleGravity        = -9.8
	PopupRiseSpeed         = 1.6
	PopupGravity           = -1.2
	PopupLife              = 0.9
)

// LoadTier: строка таблицы адаптивной нагрузки
type LoadTier struct {
	BelowFPS  float64
	FadeBoost float64
	MaxBudget int
}

// LoadTiers is ordered by ascending fps; the first row whose BelowFPS exceeds the
// measured fps applies. DefaultLoadTier covers everything else.
var LoadTiers = []LoadTier{
	{BelowFPS: 20, FadeBoost: 2.4, MaxBudget: 28},
	{BelowFPS: 28, FadeBoost: 1.8, MaxBudget: 42},
	{BelowFPS: 40, FadeBoost: 1.25, MaxBudget: 80},
}

var DefaultLoadTier = LoadTier{FadeBoost: 1.0, MaxBudget: 120}

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	GridColor       = color.RGBA{40, 44, 60, 255}
	DefaultColor    = color.RGBA{255, 255, 255, 255}
	DamageColor     = color.RGBA{255, 99, 71, 255}
)

// Config: настраиваемая часть движка, читается из YAML
type Config struct {
	Quality       string  `yaml:"quality"`
	TimeScale     float64 `yaml:"time_scale"`
	BaseFadeRate  float64 `yaml:"base_fade_rate"`
	Seed          int64   `yaml:"seed"`
	PopupFont     string  `yaml:"popup_font"`
	PopupFontSize float64 `yaml:"popup_font_size"`

	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	LogShowCaller bool   `yaml:"log_show_caller"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Quality:       "high",
		TimeScale:     1,
		BaseFadeRate:  DefaultBaseFadeRate,
		PopupFontSize: 14,
		LogLevel:      "info",
	}
}

// Load reads a YAML config file. Missing keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	source, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(source, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values that cannot be clamped into meaning and clamps the rest.
func (c *Config) Validate() error {
	if _, err := ParseQuality(c.Quality); err != nil {
		return err
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.TimeScale < MinTimeScale {
		c.TimeScale = MinTimeScale
	}
	if c.TimeScale > MaxTimeScale {
		c.TimeScale = MaxTimeScale
	}
	if c.BaseFadeRate <= 0 {
		c.BaseFadeRate = DefaultBaseFadeRate
	}
	if c.PopupFontSize <= 0 {
		c.PopupFontSize = 14
	}
	return nil
}

// QualityTier returns the parsed quality, falling back to high.
func (c Config) QualityTier() Quality {
	q, err := ParseQuality(c.Quality)
	if err != nil {
		return QualityHigh
	}
	return q
}
