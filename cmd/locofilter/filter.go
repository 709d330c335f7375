package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/walteh/locofilter/pkg/backup"
	"github.com/walteh/locofilter/pkg/config"
	"github.com/walteh/locofilter/pkg/daterange"
	"github.com/walteh/locofilter/pkg/filter"
	"github.com/walteh/locofilter/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// rangeFlags holds the mutually exclusive range-selection inputs
type rangeFlags struct {
	start string
	end   string
	date  string
	days  int
}

// resolveRange turns the flag inputs into a validated range.
// Exactly one selection mode must be present: --start/--end, a single
// --date (expanded to the full day), or --days back from now.
func resolveRange(f rangeFlags, now time.Time) (daterange.Range, error) {
	switch {
	case f.start != "":
		if f.end == "" {
			return daterange.Range{}, errors.Errorf("--end is required when using --start")
		}
		return daterange.ParseRange(f.start, f.end)

	case f.date != "":
		return daterange.ParseRange(f.date+" 00:00:00", f.date+" 23:59:59")

	case f.days > 0:
		start := now.AddDate(0, 0, -f.days)
		return daterange.ParseRange(
			start.Format("2006-01-02")+" 00:00:00",
			now.Format("2006-01-02")+" 23:59:59",
		)
	}
	return daterange.Range{}, errors.Errorf("must specify --start/--end, --date, or --days")
}

func newFilterCmd() *cobra.Command {
	var (
		backupDir    string
		outputDir    string
		configFile   string
		verbose      bool
		skipPatterns []string
		ranges       rangeFlags
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Copy the records within a date range into a new backup tree",
		Long: `Filter walks the source backup and copies every timeline item whose
span overlaps the range, every locomotion sample whose timestamp falls
inside it, and every place referenced by a surviving item, into a
fresh output tree of the same layout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Optional run config; flags win over file values
			if configFile != "" {
				cfg, err := config.Load(ctx, configFile)
				if err != nil {
					return errors.Errorf("loading config: %w", err)
				}
				if backupDir == "" {
					backupDir = cfg.BackupDir
				}
				if !cmd.Flags().Changed("output-dir") && cfg.OutputDir != "" {
					outputDir = cfg.OutputDir
				}
				if len(cfg.SkipPatterns) > 0 {
					skipPatterns = append(skipPatterns, cfg.SkipPatterns...)
				}
			}
			if backupDir == "" {
				return errors.Errorf("--backup-dir is required")
			}

			dateRange, err := resolveRange(ranges, time.Now())
			if err != nil {
				return err
			}

			reporter := report.NewConsole(ctx)
			reporter.Verbose = verbose
			reporter.Headerf("filtering %s", backupDir)

			src, err := backup.Detect(ctx, backupDir)
			if err != nil {
				return errors.Errorf("inspecting backup: %w", err)
			}
			reporter.Infof("Detected %s backup layout", src.Layout)

			pipeline, err := filter.NewPipeline(filter.Options{
				Backup:       src,
				Output:       backup.NewOutputTree(outputDir),
				Range:        dateRange,
				Reporter:     reporter,
				SkipPatterns: skipPatterns,
			})
			if err != nil {
				return err
			}

			summary, err := pipeline.Run(ctx)
			if err != nil {
				return errors.Errorf("running filter: %w", err)
			}

			reporter.Successf("Filter complete: %d items, %d samples, %d places -> %s",
				summary.Items, summary.Samples, summary.Places, outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&backupDir, "backup-dir", "b", "", "path to the source backup root")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./filtered_backup", "output directory for the filtered backup")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "optional run config file (.yaml or .hcl)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every per-file outcome")
	cmd.Flags().StringVar(&ranges.start, "start", "", "start date/time (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVar(&ranges.end, "end", "", "end date/time, required with --start")
	cmd.Flags().StringVar(&ranges.date, "date", "", "single date to filter (YYYY-MM-DD, full day)")
	cmd.Flags().IntVar(&ranges.days, "days", 0, "number of days back from today")

	cmd.Flags().StringArrayVar(&skipPatterns, "skip", nil, "glob pattern (relative to the backup root) to exclude, repeatable")

	cmd.MarkFlagsMutuallyExclusive("start", "date", "days")
	cmd.MarkFlagsOneRequired("start", "date", "days")

	return cmd
}
