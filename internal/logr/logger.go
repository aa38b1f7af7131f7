package logr

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
)

const (
	TextFormat Format = "text"
	JSONFormat Format = "json"
)

type (
	// Logger wraps the upstream logr logger, adding further functionality.
	Logger struct {
		logr.Logger

		Format Format
	}

	Config struct {
		Verbosity int
		Format    string
		// Output defaults to stderr, leaving stdout to command output.
		Output io.Writer
	}

	Format string
)

// LoadConfigFromFlags adds flags to the given flagset, and, after the
// flagset is parsed by the caller, the flags populate the returned logger
// config.
func LoadConfigFromFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.IntVarP(&cfg.Verbosity, "v", "v", 0, "Logging level")
	flags.StringVar(&cfg.Format, "log-format", string(TextFormat), "Logging format: text or json")
}

// New constructs a new logger that satisfies the logr interface
func New(cfg *Config) (Logger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: toSlogLevel(cfg.Verbosity)}

	var h slog.Handler
	switch Format(cfg.Format) {
	case TextFormat, "":
		h = slog.NewTextHandler(out, opts)
	case JSONFormat:
		h = slog.NewJSONHandler(out, opts)
	default:
		return Logger{}, fmt.Errorf("unrecognised logging format: %s", cfg.Format)
	}
	return Logger{
		Logger: logr.New(newLogSink(h)),
		Format: Format(cfg.Format),
	}, nil
}

func Discard() Logger { return Logger{Logger: logr.Discard()} }

// WithValues returns a new Logger instance with additional key/value pairs.
func (l Logger) WithValues(keysAndValues ...any) Logger {
	return Logger{
		Logger: l.Logger.WithValues(keysAndValues...),
		Format: l.Format,
	}
}

func (l Logger) V(level int) Logger {
	return Logger{Logger: l.Logger.V(level), Format: l.Format}
}

// toSlogLevel converts a logr v-level to a slog level.
func toSlogLevel(verbosity int) slog.Level {
	if verbosity <= 0 {
		return slog.LevelInfo
	}
	return slog.Level(-4 - (verbosity - 1))
}
