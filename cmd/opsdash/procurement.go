package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"opsdash/internal/parser"
	"opsdash/internal/procurement"
	"opsdash/internal/render"
	"opsdash/internal/reportschema"
)

func newProcurementCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "procurement FILE...",
		Short: "Summarize procurement report extracts",
		Long: `Classifies each file by name (PR to PO, PO Exception Report, PO Reassignment,
Vendor) and prints its status counts and error detail. Files whose name matches
no report type are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := reportschema.Load()
			if err != nil {
				return err
			}

			inputs := make([]procurement.Input, 0, len(args))
			for _, path := range args {
				inputs = append(inputs, procurement.Input{
					Name: filepath.Base(path),
					Open: fileOpener(path),
				})
			}

			result, err := procurement.NewDispatcher(registry, opts.log).Summarize(cmd.Context(), inputs)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, s := range result.Summaries {
				if err := render.Summary(w, s); err != nil {
					return err
				}
				fmt.Fprintln(w)
			}
			for _, name := range result.Skipped {
				fmt.Fprintf(w, "skipped: %s\n", name)
			}
			return nil
		},
	}
}

func fileOpener(path string) procurement.Opener {
	return func() (*excelize.File, time.Time, error) {
		info, err := os.Stat(path)
		if err != nil {
			return nil, time.Time{}, err
		}
		wb, err := parser.OpenFile(path)
		if err != nil {
			return nil, time.Time{}, err
		}
		return wb, info.ModTime(), nil
	}
}
