// Command mathesc rewrites LaTeX math delimiters in a Markdown file:
// \[ and \] become $$, \( and \) become $.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mybrain/journal/internal/config"
	"github.com/mybrain/journal/internal/converter"
	"github.com/mybrain/journal/internal/logger"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "mathesc",
		Usage:     "Convert LaTeX escape forms to dollar delimiters",
		ArgsUsage: "<input>",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to this file (default: stdout)",
			},
			&cli.BoolFlag{
				Name:    "in-place",
				Aliases: []string{"i"},
				Usage:   "Overwrite the input file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   config.DefaultConvertLogLevel,
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{config.EnvLogLevel},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(os.Stderr, logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Action: func(c *cli.Context) error {
			return runConvert(c, stdout)
		},
	}
}

func runConvert(c *cli.Context, stdout io.Writer) error {
	if c.NArg() == 0 {
		return errors.New("missing <input> argument")
	}

	opts := converter.Options{
		Input:   c.Args().First(),
		Output:  c.String("output"),
		InPlace: c.Bool("in-place"),
	}

	// urfave/cli stops at the first positional, so flags written after
	// <input> arrive here as plain arguments.
	if tail := c.Args().Tail(); len(tail) > 0 {
		extra, err := applyTrailingFlags(c, tail, &opts)
		if err != nil {
			return err
		}
		if len(extra) > 0 {
			return fmt.Errorf("unexpected arguments %v", extra)
		}
	}

	if _, err := converter.New(stdout).Run(c.Context, opts); err != nil {
		return err
	}
	return nil
}

// applyTrailingFlags parses args with the app's own flag definitions and
// folds any flags found into opts. Leftover positionals are returned.
func applyTrailingFlags(c *cli.Context, args []string, opts *converter.Options) ([]string, error) {
	set := flag.NewFlagSet(c.App.Name, flag.ContinueOnError)
	set.SetOutput(io.Discard)
	for _, f := range c.App.Flags {
		if err := f.Apply(set); err != nil {
			return nil, fmt.Errorf("define flag %v: %w", f.Names(), err)
		}
	}

	var extra []string
	for len(args) > 0 {
		if err := set.Parse(args); err != nil {
			return nil, err
		}
		rest := set.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			extra = append(extra, rest...)
			break
		}
		args = rest
		if len(args) > 0 {
			extra = append(extra, args[0])
			args = args[1:]
		}
	}

	set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "output", "o":
			opts.Output = fl.Value.String()
		case "in-place", "i":
			opts.InPlace = fl.Value.String() == "true"
		case "log-level", "l":
			logger.Setup(os.Stderr, logger.ParseLevel(fl.Value.String()))
		}
	})

	return extra, nil
}
