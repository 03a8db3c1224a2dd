package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xltable-go/pkg/xltable"
	"github.com/ukaji3/xltable-go/pkg/xltable/models"
	"github.com/ukaji3/xltable-go/pkg/xltable/output"
)

func newInspectCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "inspect input.xlsx...",
		Short: "List sheets, table candidates and print areas as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			books := make([]*models.WorkbookInfo, 0, len(args))
			for _, input := range args {
				info, err := xltable.Inspect(cmd.Context(), xltable.FromPath(input))
				if err != nil {
					return err
				}
				books = append(books, info)
			}
			var v any = books
			if len(books) == 1 {
				v = books[0]
			}
			return printJSON(cmd, v, pretty)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newDescribeCmd() *cobra.Command {
	f := &extractFlags{}
	cmd := &cobra.Command{
		Use:   "describe [flags] input.xlsx",
		Short: "Print column statistics of an extracted table as JSON",
		Long: `describe extracts the table like extract does and prints per column the
value count, nulls, distinct values and, for numeric columns, min, max, mean,
median and standard deviation. Type inference is on unless --infer=false.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.load(cmd.Flags()); err != nil {
				return err
			}
			if !cmd.Flags().Changed("infer") {
				f.infer = true
			}
			opts, err := f.options(cmd.Flags())
			if err != nil {
				return err
			}
			t, err := xltable.Extract(cmd.Context(), xltable.FromPath(args[0]), opts)
			if err != nil {
				return err
			}
			return printJSON(cmd, t.Describe(), f.pretty)
		},
	}
	bindExtractFlags(cmd.Flags(), f)
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported document formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FORMAT\tEXTENSION\tREAD\tWRITE")
			for _, f := range xltable.SupportedFormats() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Name, f.Extension, yesNo(f.Read), yesNo(f.Write))
			}
			return tw.Flush()
		},
	}
}

func printJSON(cmd *cobra.Command, v any, pretty bool) error {
	data, err := output.ToJSON(v, pretty)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
