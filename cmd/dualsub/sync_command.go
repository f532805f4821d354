package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dualsub/internal/language"
	"dualsub/internal/pairjob"
	"dualsub/internal/textutil"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var name string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "sync <primary-file> <secondary-file>",
		Short: "Synchronize one pair of subtitle tracks",
		Long: "Align the secondary track's cues to the primary track's timing and write one\n" +
			"file per language. The primary track's timestamps are authoritative.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runner, closer, err := ctx.newRunner(cfg, false)
			if err != nil {
				return err
			}
			defer closer()

			spec := pairjob.Spec{
				Name:          textutil.SanitizeFileName(name),
				PrimaryPath:   args[0],
				SecondaryPath: args[1],
				OutputDir:     cfg.Paths.OutputDir,
			}
			if spec.Name == "" {
				if strings.TrimSpace(name) != "" {
					return fmt.Errorf("--name %q has no usable characters", name)
				}
				spec.Name = deriveName(args[0], cfg.Tracks.PrimaryLanguage)
			}
			if dir := strings.TrimSpace(outputDir); dir != "" {
				abs, err := filepath.Abs(dir)
				if err != nil {
					return fmt.Errorf("resolve output directory: %w", err)
				}
				spec.OutputDir = abs
			}

			outcome, runErr := runner.RunPair(cmd.Context(), spec)
			if jsonOutput {
				if err := writeJSON(cmd, newSyncPayload(outcome, runErr)); err != nil {
					return err
				}
				return runErr
			}
			if runErr != nil {
				return runErr
			}

			status := newStatusWriter(cmd.OutOrStdout())
			primaryName := language.DisplayName(cfg.Tracks.PrimaryLanguage)
			secondaryName := language.DisplayName(cfg.Tracks.SecondaryLanguage)
			status.line("Pairs", statusOK, fmt.Sprintf("%d synchronized", outcome.Pairs))
			status.line(primaryName+" cues", unmatchedKind(outcome.UnmatchedPrimary),
				fmt.Sprintf("%d read, %d unmatched", outcome.PrimaryCues, outcome.UnmatchedPrimary))
			status.line(secondaryName+" cues", unmatchedKind(outcome.UnmatchedSecondary),
				fmt.Sprintf("%d read, %d unmatched", outcome.SecondaryCues, outcome.UnmatchedSecondary))
			if outcome.Duplicates > 0 {
				status.line("Duplicates", statusWarn, fmt.Sprintf("%d discarded", outcome.Duplicates))
			}
			for _, path := range outcome.Outputs {
				status.line("Wrote", statusInfo, path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to paths.output_dir)")
	cmd.Flags().StringVar(&name, "name", "", "Base name for output files (defaults to the primary file name)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the outcome as JSON")
	return cmd
}
