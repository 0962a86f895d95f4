// Command topicgate runs the event topic-detection-and-tracking pipeline:
// "consume" replays a line-delimited JSON post corpus through one of the
// two streaming consumers and writes the resulting timeline; "idf" runs
// the one-shot understanding pass alone and writes a TF-IDF scheme.
//
// Grounded on the teacher's cmd/focus/main.go error-reporting shape
// (wrap everything in run(), print "<binary>: <err>" to stderr, exit
// non-zero) and on cobra, already part of the dependency set, for flag
// parsing and subcommand dispatch.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "topicgate: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "topicgate",
		Short:         "Streaming topic detection and tracking over social-media posts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newConsumeCmd())
	root.AddCommand(newIDFCmd())
	return root
}

// newLogger builds a console-formatted zerolog.Logger writing to stderr,
// the way the reference pipeline logs progress, keeping log lines out of
// stdout and the output file.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// writeJSON marshals v as indented JSON to path, creating parent
// directories as needed — the output file's directory (e.g.
// "<event-dir>/.out/") may not exist yet on a fresh corpus.
func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
