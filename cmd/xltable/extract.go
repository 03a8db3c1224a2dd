package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ukaji3/xltable-go/pkg/xltable"
	"github.com/ukaji3/xltable-go/pkg/xltable/output"
	"github.com/ukaji3/xltable-go/pkg/xltable/table"
	"golang.org/x/sync/errgroup"
)

type extractFlags struct {
	config     string
	sheet      string
	sheetIndex int
	anchors    []string
	skipTop    int
	skipFoot   int
	columns    string
	column     []string
	infer      bool
	raw        bool
	format     string
	encoding   string
	output     string
	outputDir  string
	pretty     bool
	jobs       int
}

func bindExtractFlags(fs *pflag.FlagSet, f *extractFlags) {
	fs.StringVar(&f.config, "config", "", "TOML job file with flag defaults")
	fs.StringVar(&f.sheet, "sheet", "", "Sheet name to read")
	fs.IntVar(&f.sheetIndex, "sheet-index", 0, "Zero-based sheet position to read")
	fs.StringArrayVar(&f.anchors, "anchor", nil, "Anchor cell text (repeatable; any of the values matches)")
	fs.IntVar(&f.skipTop, "skip-top", 0, "Rows to ignore at the top of the sheet")
	fs.IntVar(&f.skipFoot, "skip-foot", 0, "Rows to drop from the end of the table")
	fs.StringVar(&f.columns, "columns", "", "Regular expression matched at the start of header fields")
	fs.StringArrayVar(&f.column, "column", nil, "Header field to keep (repeatable)")
	fs.BoolVar(&f.infer, "infer", false, "Infer int, decimal, bool and date columns")
	fs.BoolVar(&f.raw, "raw", false, "Read unformatted xlsx cell values")
	fs.StringVarP(&f.format, "format", "f", string(output.FormatCSV), "Output format: csv, json, markdown")
	fs.StringVar(&f.encoding, "encoding", "", "Output charset, e.g. shift_jis or windows-1252 (default utf-8)")
	fs.StringVarP(&f.output, "output", "o", "", "Output file path (default: stdout)")
	fs.StringVar(&f.outputDir, "output-dir", "", "Directory for one output file per input")
	fs.BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	fs.IntVarP(&f.jobs, "jobs", "j", 4, "Documents processed in parallel")
}

func newExtractCmd() *cobra.Command {
	f := &extractFlags{}
	cmd := &cobra.Command{
		Use:   "extract [flags] input.xlsx...",
		Short: "Extract the table of a sheet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.load(cmd.Flags()); err != nil {
				return err
			}
			return runExtract(cmd, f, args)
		},
	}
	bindExtractFlags(cmd.Flags(), f)
	return cmd
}

// load fills flags left unset from the [extract] section of the job file.
func (f *extractFlags) load(fs *pflag.FlagSet) error {
	if f.config == "" {
		return nil
	}
	job, err := LoadJob(f.config)
	if err != nil {
		return fmt.Errorf("%w: %w", xltable.ErrUsage, err)
	}
	job.Extract.apply(fs, f)
	return nil
}

func (f *extractFlags) options(fs *pflag.FlagSet) (xltable.ExtractOptions, error) {
	opts := xltable.DefaultExtractOptions()

	switch {
	case fs.Changed("sheet") && fs.Changed("sheet-index"):
		return opts, fmt.Errorf("%w: --sheet and --sheet-index are mutually exclusive", xltable.ErrUsage)
	case f.sheet != "":
		opts.Sheet = xltable.SheetName(f.sheet)
	default:
		opts.Sheet = xltable.SheetIndex(f.sheetIndex)
	}

	switch len(f.anchors) {
	case 0:
	case 1:
		opts.Anchor = xltable.Equal(f.anchors[0])
	default:
		opts.Anchor = xltable.OneOf(f.anchors...)
	}

	switch {
	case f.columns != "" && len(f.column) > 0:
		return opts, fmt.Errorf("%w: --columns and --column are mutually exclusive", xltable.ErrUsage)
	case f.columns != "":
		opts.Columns = xltable.Match(f.columns)
	case len(f.column) > 0:
		opts.Columns = xltable.OneOf(f.column...)
	}

	opts.SkipTop = f.skipTop
	opts.SkipFoot = f.skipFoot
	opts.RawValues = f.raw
	opts.InferTypes = f.infer
	return opts, nil
}

func runExtract(cmd *cobra.Command, f *extractFlags, inputs []string) error {
	opts, err := f.options(cmd.Flags())
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(f.format)
	if err != nil {
		return fmt.Errorf("%w: %w", xltable.ErrUsage, err)
	}
	if f.output != "" && (len(inputs) > 1 || f.outputDir != "") {
		return fmt.Errorf("%w: --output takes a single input; use --output-dir", xltable.ErrUsage)
	}
	if f.outputDir != "" {
		if err := os.MkdirAll(f.outputDir, 0755); err != nil {
			return err
		}
	}

	tables := make([]*table.Table, len(inputs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(f.jobs, 1))
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			t, err := xltable.Extract(ctx, xltable.FromPath(input), opts)
			if err != nil {
				return err
			}
			slog.DebugContext(ctx, "extracted", "input", input, "rows", t.Len(), "columns", t.Width())
			if f.outputDir != "" {
				dest := filepath.Join(f.outputDir, strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))+format.Extension())
				return writeTableFile(ctx, dest, t, format, f)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if f.outputDir != "" {
		return nil
	}
	if f.output != "" {
		return writeTableFile(cmd.Context(), f.output, tables[0], format, f)
	}
	for _, t := range tables {
		if err := writeTable(cmd.OutOrStdout(), t, format, f); err != nil {
			return err
		}
	}
	return nil
}

func writeTableFile(ctx context.Context, path string, t *table.Table, format output.Format, f *extractFlags) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeTable(out, t, format, f); err != nil {
		out.Close()
		return err
	}
	slog.DebugContext(ctx, "wrote output", "path", path)
	return out.Close()
}

func writeTable(w io.Writer, t *table.Table, format output.Format, f *extractFlags) error {
	enc, err := output.EncodeWriter(w, f.encoding)
	if err != nil {
		return fmt.Errorf("%w: %w", xltable.ErrUsage, err)
	}
	if err := output.Render(enc, t, format, f.pretty); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
