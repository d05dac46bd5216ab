package ci

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Log is the package-level structured logger used at stage
// boundaries (scan/preparse/parse/resolve/typecheck/monomorphize/emit).
// It defaults to human-readable console output; the driver may
// replace it (SetLogOutput) before running the pipeline.
var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

// SetLogOutput redirects the package logger, e.g. to a JSON sink in
// non-interactive driver runs.
func SetLogOutput(w io.Writer) {
	Log = zerolog.New(w).With().Timestamp().Logger()
}

// stageLogger returns a logger annotated with the file currently being
// processed and the pipeline stage, so concurrent per-file pipelines
// can be told apart in the log stream.
func stageLogger(file, stage string) zerolog.Logger {
	return Log.With().Str("file", file).Str("stage", stage).Logger()
}
