package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xltable-go/pkg/xltable"
	"github.com/ukaji3/xltable-go/pkg/xltable/table"
)

type exportFlags struct {
	config   string
	sheet    string
	ifExists string
	infer    bool
	comma    string
	types    map[string]string
}

func newExportCmd() *cobra.Command {
	f := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export [flags] input.csv output.xlsx",
		Short: "Write a CSV table into a sheet of an .xlsx document",
		Long: `export reads a CSV file whose first line is the header and writes it
into a sheet of an .xlsx document. A missing document is created; other
sheets of an existing document are kept.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.config != "" {
				job, err := LoadJob(f.config)
				if err != nil {
					return fmt.Errorf("%w: %w", xltable.ErrUsage, err)
				}
				job.Export.apply(cmd.Flags(), f)
			}
			return runExport(cmd, f, args[0], args[1])
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "TOML job file with flag defaults")
	fs.StringVar(&f.sheet, "sheet", xltable.DefaultSheetName, "Target sheet name")
	fs.StringVar(&f.ifExists, "if-exists", string(xltable.Overwrite), "When the sheet exists: overwrite, assert or skip")
	fs.BoolVar(&f.infer, "infer", false, "Infer int, decimal, bool and date columns before writing")
	fs.StringVar(&f.comma, "comma", ",", "CSV field delimiter")
	fs.StringToStringVar(&f.types, "type", nil, "Column type as name=type (text, int, decimal, bool, date)")
	return cmd
}

func (f *exportFlags) readOptions() (table.ReadOptions, error) {
	opts := table.ReadOptions{Types: make(map[string]table.Type, len(f.types))}
	for name, s := range f.types {
		typ, err := table.ParseType(s)
		if err != nil {
			return opts, fmt.Errorf("%w: column %q: %w", xltable.ErrUsage, name, err)
		}
		opts.Types[name] = typ
	}
	if utf8.RuneCountInString(f.comma) != 1 {
		return opts, fmt.Errorf("%w: --comma must be a single character, got %q", xltable.ErrUsage, f.comma)
	}
	opts.Comma, _ = utf8.DecodeRuneInString(f.comma)
	return opts, nil
}

func runExport(cmd *cobra.Command, f *exportFlags, input, dest string) error {
	readOpts, err := f.readOptions()
	if err != nil {
		return err
	}

	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	t, err := table.ReadCSV(in, readOpts)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if f.infer {
		t = t.Infer()
	}

	_, err = xltable.Export(cmd.Context(), dest, t, xltable.ExportOptions{
		SheetName: f.sheet,
		IfExists:  xltable.Policy(f.ifExists),
	})
	return err
}
