package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	panerrors "pansyslog.io/internal/errors"
	"pansyslog.io/internal/render"
)

// StdinPath as the input path reads lines from standard input
const StdinPath = "-"

// Config holds all configuration for one parser run
type Config struct {
	// Input / Output
	InputPath   string `json:"input_path"`
	OutputPath  string `json:"output_path"`
	ParquetPath string `json:"parquet_path"`

	// Rendering
	OutputMode string `json:"output_mode"`
	Fields     string `json:"fields"`
	Tag        bool   `json:"tag"`
	Color      bool   `json:"color"`

	// Decoding
	StripEnvelope bool `json:"strip_envelope"`
	StrictLength  bool `json:"strict_length"`
	ParserWorkers int  `json:"parser_workers"`

	// Logging Configuration
	LogLevel   string `json:"log_level"`
	Timestamps bool   `json:"timestamps"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		InputPath:   getEnv("PAN_INPUT_FILE", ""),
		OutputPath:  getEnv("PAN_OUTPUT_FILE", ""),
		ParquetPath: getEnv("PAN_PARQUET_FILE", ""),

		OutputMode: getEnv("PAN_OUTPUT_MODE", render.ModeFull.String()),
		Fields:     getEnv("PAN_FIELDS", ""),
		Tag:        getEnvAsBool("PAN_TAG", true),
		Color:      getEnvAsBool("PAN_COLOR", false),

		StripEnvelope: getEnvAsBool("PAN_STRIP_ENVELOPE", false),
		StrictLength:  getEnvAsBool("PAN_STRICT_LENGTH", false),
		ParserWorkers: getEnvAsInt("PAN_PARSER_WORKERS", 0),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Timestamps: getEnvAsBool("PAN_TIMESTAMPS", false),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input file must be specified: %w", panerrors.ErrInvalidConfig)
	}
	if c.ParserWorkers < 0 {
		return fmt.Errorf("parser workers must not be negative, got %d: %w", c.ParserWorkers, panerrors.ErrInvalidConfig)
	}
	if c.OutputPath != "" && c.OutputPath == c.InputPath {
		return fmt.Errorf("output file %s would overwrite the input: %w", c.OutputPath, panerrors.ErrInvalidConfig)
	}
	if _, err := c.Projection(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Projection builds the renderer options, parsing the field list when the
// mode needs one.
func (c *Config) Projection() (render.Options, error) {
	mode, err := render.ParseMode(c.OutputMode)
	if err != nil {
		return render.Options{}, err
	}

	opts := render.Options{Mode: mode, Tag: c.Tag, Color: c.Color}
	if mode == render.ModeFields {
		opts.Fields, err = render.ParseFieldList(c.Fields)
		if err != nil {
			return render.Options{}, err
		}
	} else if c.Fields != "" {
		return render.Options{}, fmt.Errorf("field list %q given with output mode %s: %w",
			c.Fields, mode, panerrors.ErrInvalidConfig)
	}
	return opts, nil
}

// SlogLevel maps LogLevel onto a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, panerrors.ErrInvalidConfig)
	}
	return level, nil
}
