// Package obslog provides the thin structured-logging wrapper used by
// the CLI (cmd/ktestable). The core packages (ktest, oracle,
// learner) never import obslog: per spec §7, the core surfaces errors
// to its caller and does not log.
package obslog

import (
	"log/slog"
	"os"
)

// Level selects the verbosity of a Logger: "info" (default) logs
// learn start/finish only; "debug" additionally logs each accepted or
// rejected merge candidate.
type Level string

const (
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

// Logger is the narrow structured-logging surface the CLI uses to
// record learn progress. It is a thin wrapper over log/slog rather
// than a bespoke format, matching the example pack's preference for
// structured key/value logging over ad-hoc fmt.Printf calls.
type Logger struct {
	slog  *slog.Logger
	debug bool
}

// New builds a Logger writing to os.Stderr at the given level. An unrecognized
// level is treated as LevelInfo.
func New(level Level) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if level == LevelDebug {
		opts.Level = slog.LevelDebug
	}
	return &Logger{
		slog:  slog.New(slog.NewTextHandler(os.Stderr, opts)),
		debug: level == LevelDebug,
	}
}

// LearnStarted logs the parameters a learn invocation begins with.
func (l *Logger) LearnStarted(examples int, k int, oracleName string) {
	l.slog.Info("learn started", "examples", examples, "k", k, "oracle", oracleName)
}

// LearnFinished logs the outcome of a learn invocation.
func (l *Logger) LearnFinished(clusters int, elapsedMS int64) {
	l.slog.Info("learn finished", "clusters", clusters, "elapsed_ms", elapsedMS)
}

// MergeCandidate logs one accepted or rejected merge candidate,
// identified by the cardinality of each side's descriptor and the
// distance between them; it is a no-op unless the logger was built
// with LevelDebug, since this fires once per distance-chain step and
// would otherwise flood stderr on large datasets.
func (l *Logger) MergeCandidate(leftLen, rightLen, dist int, accepted bool) {
	if !l.debug {
		return
	}
	l.slog.Debug("merge candidate", "left_len", leftLen, "right_len", rightLen, "dist", dist, "accepted", accepted)
}
