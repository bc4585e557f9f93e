package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the runtime configuration shared by all binaries.
type Settings struct {
	GridSize  int    // Cells per side
	Seed      int64  // Food RNG seed, 0 means time based
	Addr      string // Listen address for the web server
	LogLevel  string // debug, info, warn, error
	LogFormat string // text or json
	LogFile   string // Empty means stderr
	TraceFile string // JSON lines frame trace, empty disables it
}

// hclSettings mirrors Settings for decoding a settings file. Every attribute
// is optional.
type hclSettings struct {
	GridSize  *int    `hcl:"grid_size,optional"`
	Seed      *int64  `hcl:"seed,optional"`
	Addr      *string `hcl:"addr,optional"`
	LogLevel  *string `hcl:"log_level,optional"`
	LogFormat *string `hcl:"log_format,optional"`
	LogFile   *string `hcl:"log_file,optional"`
	TraceFile *string `hcl:"trace_file,optional"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		GridSize:  GridSize,
		Addr:      DefaultAddr,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds settings from the defaults, then the HCL file at path (skipped
// when path is empty), then a .env file in the working directory if present,
// then SNAKE_* environment variables. The result is validated.
func Load(path string) (Settings, error) {
	s := Default()

	if path != "" {
		if err := s.applyFile(path); err != nil {
			return Settings{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("loading .env: %w", err)
	}
	if err := s.applyEnv(); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) applyFile(path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}

	var parsed hclSettings
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}

	if parsed.GridSize != nil {
		s.GridSize = *parsed.GridSize
	}
	if parsed.Seed != nil {
		s.Seed = *parsed.Seed
	}
	if parsed.Addr != nil {
		s.Addr = *parsed.Addr
	}
	if parsed.LogLevel != nil {
		s.LogLevel = *parsed.LogLevel
	}
	if parsed.LogFormat != nil {
		s.LogFormat = *parsed.LogFormat
	}
	if parsed.LogFile != nil {
		s.LogFile = *parsed.LogFile
	}
	if parsed.TraceFile != nil {
		s.TraceFile = *parsed.TraceFile
	}
	return nil
}

func (s *Settings) applyEnv() error {
	if v, ok := os.LookupEnv("SNAKE_GRID_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SNAKE_GRID_SIZE must be an integer: %v", ErrInvalidSettings, err)
		}
		s.GridSize = n
	}
	if v, ok := os.LookupEnv("SNAKE_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: SNAKE_SEED must be an integer: %v", ErrInvalidSettings, err)
		}
		s.Seed = n
	}
	s.Addr = getEnvWithDefault("SNAKE_ADDR", s.Addr)
	s.LogLevel = getEnvWithDefault("SNAKE_LOG_LEVEL", s.LogLevel)
	s.LogFormat = getEnvWithDefault("SNAKE_LOG_FORMAT", s.LogFormat)
	s.LogFile = getEnvWithDefault("SNAKE_LOG_FILE", s.LogFile)
	s.TraceFile = getEnvWithDefault("SNAKE_TRACE_FILE", s.TraceFile)
	return nil
}

// Validate checks the settings for values the game cannot run with.
func (s Settings) Validate() error {
	// The start cell and at least one food cell must fit.
	if s.GridSize <= StartX || s.GridSize <= StartY || s.GridSize < FoodMin+1 {
		return fmt.Errorf("%w: grid size %d is too small (minimum %d)", ErrInvalidSettings, s.GridSize, max(StartX, StartY)+1)
	}
	if _, err := s.Level(); err != nil {
		return err
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalidSettings, s.LogFormat)
	}
	return nil
}

// Level parses LogLevel.
func (s Settings) Level() (slog.Level, error) {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidSettings, s.LogLevel)
}

// RandomSeed returns Seed, or a time based seed when Seed is zero.
func (s Settings) RandomSeed() uint64 {
	if s.Seed != 0 {
		return uint64(s.Seed)
	}
	return uint64(time.Now().UnixNano())
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
