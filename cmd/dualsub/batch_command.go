package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dualsub/internal/history"
	"dualsub/internal/language"
	"dualsub/internal/pairjob"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var inputDir string
	var outputDir string
	var workers int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "batch [base...]",
		Short: "Synchronize every <base>_<language> pair in a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dir := strings.TrimSpace(inputDir); dir != "" {
				if cfg.Paths.InputDir, err = filepath.Abs(dir); err != nil {
					return fmt.Errorf("resolve input directory: %w", err)
				}
			}
			if dir := strings.TrimSpace(outputDir); dir != "" {
				if cfg.Paths.OutputDir, err = filepath.Abs(dir); err != nil {
					return fmt.Errorf("resolve output directory: %w", err)
				}
			}
			if cmd.Flags().Changed("workers") {
				if workers < 1 {
					return fmt.Errorf("--workers must be at least 1")
				}
				cfg.Batch.Workers = workers
			}

			runner, closer, err := ctx.newRunner(cfg, true)
			if err != nil {
				return err
			}
			defer closer()

			specs, err := runner.Discover(cfg.Paths.InputDir, cfg.Paths.OutputDir, args...)
			if err != nil {
				return err
			}
			if len(specs) == 0 {
				if jsonOutput {
					return writeJSON(cmd, pairjob.BatchReport{Results: []pairjob.PairResult{}})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "No %s/%s pairs found in %s\n",
					cfg.Tracks.PrimaryLanguage, cfg.Tracks.SecondaryLanguage, cfg.Paths.InputDir)
				return nil
			}

			report, runErr := runner.RunBatch(cmd.Context(), specs)
			if runErr != nil && report.RunID == "" {
				return runErr
			}
			if jsonOutput {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				renderBatchReport(cmd, report, cfg.Tracks.PrimaryLanguage, cfg.Tracks.SecondaryLanguage)
			}
			if runErr != nil {
				return runErr
			}
			if report.Failed > 0 {
				return errPairsFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input", "", "Input directory (defaults to paths.input_dir)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to paths.output_dir)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent pairs (defaults to batch.workers)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the batch report as JSON")
	return cmd
}

func renderBatchReport(cmd *cobra.Command, report pairjob.BatchReport, primaryLang, secondaryLang string) {
	out := cmd.OutOrStdout()
	headers := []string{
		"Pair", "Status", "Pairs",
		"Unmatched " + strings.ToUpper(language.Canonical(primaryLang)),
		"Unmatched " + strings.ToUpper(language.Canonical(secondaryLang)),
		"Duration", "Detail",
	}
	rows := make([][]string, 0, len(report.Results))
	var pairs, unmatchedPrimary, unmatchedSecondary int
	for _, result := range report.Results {
		detail := ""
		if result.Status != history.StatusSucceeded {
			detail = result.Message
		}
		pairs += result.Outcome.Pairs
		unmatchedPrimary += result.Outcome.UnmatchedPrimary
		unmatchedSecondary += result.Outcome.UnmatchedSecondary
		rows = append(rows, []string{
			result.Spec.Name,
			string(result.Status),
			strconv.Itoa(result.Outcome.Pairs),
			strconv.Itoa(result.Outcome.UnmatchedPrimary),
			strconv.Itoa(result.Outcome.UnmatchedSecondary),
			formatDuration(result.Outcome.Duration),
			detail,
		})
	}
	footer := []string{
		"Total", "",
		strconv.Itoa(pairs), strconv.Itoa(unmatchedPrimary), strconv.Itoa(unmatchedSecondary),
		formatDuration(report.Duration), "",
	}
	fmt.Fprintln(out, renderTableWithFooter(headers, rows, footer,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}))

	summaryKind := statusOK
	if report.Failed > 0 {
		summaryKind = statusError
	} else if report.Skipped > 0 {
		summaryKind = statusWarn
	}
	newStatusWriter(out).line("Run "+shortID(report.RunID), summaryKind,
		fmt.Sprintf("%d succeeded, %d failed, %d skipped in %s",
			report.Succeeded, report.Failed, report.Skipped, formatDuration(report.Duration)))
}
