/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/tail"
	"github.com/kold/ringicon"
	"github.com/kold/ringicon/config"
	"github.com/kold/ringicon/logger/dot"
	"github.com/kold/ringicon/version"
	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
)

const (
	completionMessage = "Icons generated!"
	maxDumpedLogs     = 100
)

var (
	profile string
	runID   = uuid.New().String()
	tb      = tail.New(maxDumpedLogs)
)

var rootCmd = &cobra.Command{
	Use:   version.Name,
	Short: "ringicon renders the glowing ring PWA icons",
	Long: `ringicon renders the glowing ring PWA icons.

Without a subcommand it writes public/icon-192.png and public/icon-512.png
(or the icons listed in the config file) and prints a confirmation line.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	Version:      fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newGenerator(cmd)
		if err != nil {
			return err
		}
		if err := g.Generate(cmd.Context()); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), completionMessage)
		return nil
	},
}

type errorData struct {
	RunID       string    `json:"run_id"`
	LatestLogs  []any     `json:"latest_logs"`
	StackTraces any       `json:"stack_traces"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	Revision    string    `json:"revision"`
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Write stack trace log to state directory
		d := &errorData{
			RunID:       runID,
			LatestLogs:  latestLogs(tb.Lines()),
			StackTraces: errors.StackTraces(err),
			CreatedAt:   time.Now(),
			Version:     version.Version,
			Revision:    version.Revision,
		}
		b, err := json.Marshal(d)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		} else {
			dumpPath := filepath.Join(config.StateHomePath(), "error.json")
			if err := os.MkdirAll(config.StateHomePath(), 0o700); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", config.StateHomePath(), err)
			} else if err := os.WriteFile(dumpPath, b, 0o600); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "failed to write error.json to %s: %v\n", dumpPath, err)
			}
		}
		os.Exit(1)
	}
}

// latestLogs decodes the buffered JSON log lines for the error dump.
// Lines that are not JSON are kept as strings.
func latestLogs(lines []string) []any {
	var logs []any
	for _, line := range lines {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			logs = append(logs, line)
		} else {
			logs = append(logs, m)
		}
	}
	return logs
}

// newLogger keeps JSON records in w for the error dump. Progress dots are
// only printed when stdout is a terminal.
func newLogger(stdout, w io.Writer) (*slog.Logger, error) {
	handlers := []slog.Handler{
		slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	if f, ok := stdout.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		h, err := dot.New(slog.NewTextHandler(f, nil), nil)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
	}
	return slog.New(slogmulti.Fanout(handlers...)).With(slog.String("run_id", runID)), nil
}

// newGenerator builds a Generator from the profile's config.
func newGenerator(cmd *cobra.Command) (*ringicon.Generator, error) {
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, err
	}
	icons, err := cfg.Icons()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd.OutOrStdout(), tb)
	if err != nil {
		return nil, err
	}
	return ringicon.New(
		ringicon.WithIcons(icons),
		ringicon.WithLogger(logger),
	)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "", "", "profile name")
}
