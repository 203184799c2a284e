// Package converter runs one read-transform-write cycle for the mathesc CLI.
package converter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mybrain/journal/internal/document"
	"github.com/mybrain/journal/internal/domain"
	"github.com/mybrain/journal/internal/escape"
)

// Destination says where the converted text goes.
type Destination int

const (
	DestinationStdout Destination = iota
	DestinationFile
	DestinationInPlace
)

func (d Destination) String() string {
	switch d {
	case DestinationFile:
		return "file"
	case DestinationInPlace:
		return "in-place"
	default:
		return "stdout"
	}
}

// Options mirror the command line.
type Options struct {
	Input   string
	Output  string
	InPlace bool
}

// Validate checks that the options describe a runnable conversion.
func (o Options) Validate() error {
	if o.Input == "" {
		return domain.ErrMissingInput
	}
	return nil
}

// Destination resolves where output is written. In-place wins over an
// output path when both are set.
func (o Options) Destination() Destination {
	switch {
	case o.InPlace:
		return DestinationInPlace
	case o.Output != "":
		return DestinationFile
	default:
		return DestinationStdout
	}
}

// Result describes a finished conversion.
type Result struct {
	Destination  Destination
	Path         string
	Replacements int
	Bytes        int64
}

// Converter writes stdout-bound output to a configurable writer.
type Converter struct {
	stdout io.Writer
}

// New creates a Converter that prints to stdout when no file destination is chosen.
func New(stdout io.Writer) *Converter {
	return &Converter{stdout: stdout}
}

// Run reads opts.Input, rewrites its math delimiters and writes the result.
func (c *Converter) Run(ctx context.Context, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	dest := opts.Destination()
	if opts.InPlace && opts.Output != "" {
		slog.Warn("both --in-place and --output given, writing in place",
			"input", opts.Input,
			"ignored_output", opts.Output,
		)
	}

	src, err := document.Read(opts.Input)
	if err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}

	out := src.Transformed()
	res := Result{
		Destination:  dest,
		Replacements: escape.Count(src.Text),
		Bytes:        int64(len(out.Text)),
	}

	switch dest {
	case DestinationInPlace:
		res.Path = opts.Input
		err = out.Save(opts.Input)
	case DestinationFile:
		res.Path = opts.Output
		err = out.Save(opts.Output)
	default:
		_, err = out.WriteTo(c.stdout)
		if err != nil {
			err = fmt.Errorf("write stdout: %w", err)
		}
	}
	if err != nil {
		return Result{}, err
	}

	slog.Debug("document converted",
		"input", opts.Input,
		"destination", dest.String(),
		"path", res.Path,
		"replacements", res.Replacements,
		"bytes", res.Bytes,
	)

	return res, nil
}
