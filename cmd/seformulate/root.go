package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/katalvlaran/psse/converters"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "seformulate",
		Short:         "Inspect residual formulations for power-system state estimation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	cmd.AddCommand(newBuildCmd(opts), newDecomposeCmd(opts))

	return cmd
}

// logger writes to the command's stderr.
func (o *rootOptions) logger(cmd *cobra.Command) (*slog.Logger, error) {
	return newLogger(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	ho := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, ho)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, ho)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q: want text or json", format)
	}
}

// readDocument decodes the measurement document at path.
func readDocument(path string) (converters.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return converters.Document{}, err
	}
	defer f.Close()

	doc, err := converters.Decode(f)
	if err != nil {
		return converters.Document{}, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}
