package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// ParseFlags loads settings for a binary from its command line. The -config
// file and the environment are applied first (see Load), then any flag given
// explicitly. It reports true when the caller should exit cleanly, as after
// -help.
func ParseFlags(name string, args []string, output io.Writer) (Settings, bool, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage:\n  %s [options]\n\nOptions:\n", name)
		fs.PrintDefaults()
	}

	defaults := Default()
	configPath := fs.String("config", "", "Path to an HCL settings file.")
	gridSize := fs.Int("grid", defaults.GridSize, "Cells per side of the board.")
	seed := fs.Int64("seed", 0, "Food RNG seed. 0 is time based.")
	addr := fs.String("addr", defaults.Addr, "Listen address for the web server.")
	logLevel := fs.String("log-level", defaults.LogLevel, "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := fs.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logFile := fs.String("log-file", "", "Append logs to this file instead of the default output.")
	traceFile := fs.String("trace", "", "Write every rendered frame to this file as JSON lines.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Settings{}, true, nil
		}
		return Settings{}, false, err
	}

	s, err := Load(*configPath)
	if err != nil {
		return Settings{}, false, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "grid":
			s.GridSize = *gridSize
		case "seed":
			s.Seed = *seed
		case "addr":
			s.Addr = *addr
		case "log-level":
			s.LogLevel = *logLevel
		case "log-format":
			s.LogFormat = *logFormat
		case "log-file":
			s.LogFile = *logFile
		case "trace":
			s.TraceFile = *traceFile
		}
	})

	if err := s.Validate(); err != nil {
		return Settings{}, false, err
	}
	return s, false, nil
}
