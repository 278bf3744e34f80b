package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/outliner/internal/outline"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer auth on the API.
	APIKey string

	// Result sink connection. Empty URL disables the sink.
	ResultSinkURL    string
	ResultSinkAPIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Outline analysis knobs
	ConfidenceThreshold      float64
	TitleConfidenceThreshold float64
	MaxHeadingWords          int
	MinFontSizeRatio         float64
	ValidateHierarchy        bool
	WeightPattern            float64
	WeightContent            float64
	WeightSpatial            float64
	WeightContext            float64
}

func Load() Config {
	defaults := outline.DefaultConfig()
	cfg := Config{
		Port: envOr("PORT", "8095"),

		APIKey: os.Getenv("OUTLINER_API_KEY"),

		ResultSinkURL:    os.Getenv("RESULT_SINK_URL"),
		ResultSinkAPIKey: os.Getenv("RESULT_SINK_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		ConfidenceThreshold:      envFloat("CONFIDENCE_THRESHOLD", defaults.ConfidenceThreshold),
		TitleConfidenceThreshold: envFloat("TITLE_CONFIDENCE_THRESHOLD", defaults.TitleConfidenceThreshold),
		MaxHeadingWords:          envInt("MAX_HEADING_WORDS", defaults.MaxHeadingWords),
		MinFontSizeRatio:         envFloat("MIN_FONT_SIZE_RATIO", defaults.MinFontSizeRatio),
		ValidateHierarchy:        envBool("VALIDATE_HIERARCHY", defaults.ValidateHierarchy),
		WeightPattern:            envFloat("WEIGHT_PATTERN", defaults.Weights.Pattern),
		WeightContent:            envFloat("WEIGHT_CONTENT", defaults.Weights.Content),
		WeightSpatial:            envFloat("WEIGHT_SPATIAL", defaults.Weights.Spatial),
		WeightContext:            envFloat("WEIGHT_CONTEXT", defaults.Weights.Context),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Outline validates the analysis knobs and builds the extractor config.
func (c Config) Outline() (outline.Config, error) {
	return outline.NewConfig(outline.Config{
		ConfidenceThreshold:      c.ConfidenceThreshold,
		TitleConfidenceThreshold: c.TitleConfidenceThreshold,
		MaxHeadingWords:          c.MaxHeadingWords,
		MinFontSizeRatio:         c.MinFontSizeRatio,
		ValidateHierarchy:        c.ValidateHierarchy,
		Weights: outline.Weights{
			FontSize: outline.DefaultWeights().FontSize,
			Pattern:  c.WeightPattern,
			Content:  c.WeightContent,
			Spatial:  c.WeightSpatial,
			Context:  c.WeightContext,
		},
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
