package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"opsdash/internal/model"
	"opsdash/internal/parser"
	"opsdash/internal/render"
	"opsdash/internal/reportschema"
	"opsdash/internal/shift"
)

func newShiftCmd(opts *cliOptions) *cobra.Command {
	var start, end, process, date string

	cmd := &cobra.Command{
		Use:   "shift FILE",
		Short: "Analyze an End Of Shift report",
		Long: `Reshapes the End Of Shift report into one record per shift, filters out
records that reference purchase orders or incidents, and prints the process
counts. Use --process to drill into per-date counts and --date for the records.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := reportschema.Load()
			if err != nil {
				return err
			}

			wb, err := parser.OpenFile(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			rep, err := shift.Analyze(wb, &registry.Shift)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			rep.FileName = filepath.Base(args[0])
			opts.log.Debug("shift report analyzed",
				zap.String("file", rep.FileName),
				zap.Int("records", len(rep.Records)),
				zap.Int("bad", len(rep.Bad)),
				zap.Int("dropped", rep.Dropped),
			)

			rng, err := cliRange(rep, start, end)
			if err != nil {
				return err
			}
			return printShift(cmd.OutOrStdout(), rep, rng, process, date)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "起始日期 YYYY-MM-DD (默认为报告最早日期)")
	cmd.Flags().StringVar(&end, "end", "", "结束日期 YYYY-MM-DD (默认为报告最晚日期)")
	cmd.Flags().StringVar(&process, "process", "", "下钻的 Process")
	cmd.Flags().StringVar(&date, "date", "", "下钻日期 YYYY-MM-DD，需同时指定 --process")
	return cmd
}

// cliRange 解析日期范围；缺省端取报告覆盖范围
func cliRange(rep *shift.Report, start, end string) (*shift.DateRange, error) {
	var from, to *time.Time
	if start != "" {
		t, err := time.Parse(model.DateLayout, start)
		if err != nil {
			return nil, fmt.Errorf("invalid --start: %w", err)
		}
		from = &t
	}
	if end != "" {
		t, err := time.Parse(model.DateLayout, end)
		if err != nil {
			return nil, fmt.Errorf("invalid --end: %w", err)
		}
		to = &t
	}
	return rep.Range(from, to)
}

func printShift(w io.Writer, rep *shift.Report, rng *shift.DateRange, process, date string) error {
	switch {
	case date != "" && process == "":
		return fmt.Errorf("--date requires --process")
	case date != "":
		d, err := time.Parse(model.DateLayout, date)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		fmt.Fprintln(w, render.Title(fmt.Sprintf("%s on %s", process, date)))
		return render.ShiftRecords(w, rep.Drill(process, d))
	case process != "":
		fmt.Fprintln(w, render.Title(process))
		return render.DateCounts(w, rep.Timeline(process, rng))
	}

	fmt.Fprintln(w, render.Title(rep.FileName))
	if rng != nil {
		fmt.Fprintf(w, "%s to %s\n", rng.Start.Format(model.DateLayout), rng.End.Format(model.DateLayout))
	}
	fmt.Fprintf(w, "%d records, %d noise, %d dropped\n\n", len(rep.Good), len(rep.Bad), rep.Dropped)
	if err := render.ProcessCounts(w, rep.Counts(rng)); err != nil {
		return err
	}
	if len(rep.Bad) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, render.Title("Noise records"))
		return render.ShiftRecords(w, rep.Bad)
	}
	return nil
}
