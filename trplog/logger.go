package trplog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a leveled, structured logger: Round/Node always log at info
// level; Debug gates behind verbose since pulse's augmentation trace is
// high-volume. The zero value is a safe no-op logger: an unconfigured
// zerolog.Logger discards everything written to it, so a nil/false verbose
// flag means silence by construction.
type Logger struct {
	zl      zerolog.Logger
	verbose bool
}

// New builds a console-formatted Logger writing to os.Stderr; verbose also
// enables Debug-level output (pulse's per-augmentation trace).
func New(verbose bool) Logger {
	return Logger{
		zl:      zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger(),
		verbose: verbose,
	}
}

// Round logs one column-generation iteration's progress (spec §6.3).
func (l Logger) Round(iteration int, objective float64, routesAdded int, elapsed time.Duration) {
	l.zl.Info().
		Int("round", iteration).
		Float64("objective", objective).
		Int("routes_added", routesAdded).
		Dur("elapsed", elapsed).
		Msg("column generation round")
}

// Node logs one branch-and-price node's outcome.
func (l Logger) Node(depth int, bound float64, status string) {
	l.zl.Info().
		Int("depth", depth).
		Float64("bound", bound).
		Str("status", status).
		Msg("branch-and-price node")
}

// Debug logs a high-volume trace event, gated behind verbose (pulse's
// per-augmentation log).
func (l Logger) Debug(vertex int, cost float64) {
	if !l.verbose {
		return
	}
	l.zl.Debug().Int("vertex", vertex).Float64("cost", cost).Msg("pulse augmentation")
}

// Warn logs a non-fatal error the caller is continuing past.
func (l Logger) Warn(msg string, err error) {
	l.zl.Warn().Err(err).Msg(msg)
}
