package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dualsub/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded batch runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if id := strings.TrimSpace(runID); id != "" {
				return showRun(cmd, store, id, jsonOutput)
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				finished := "running"
				if run.FinishedAt != nil {
					finished = formatDuration(run.FinishedAt.Sub(run.StartedAt))
				}
				rows = append(rows, []string{
					shortID(run.ID),
					run.StartedAt.Local().Format(time.DateTime),
					finished,
					strconv.Itoa(run.Total),
					strconv.Itoa(run.Succeeded),
					strconv.Itoa(run.Failed),
					strconv.Itoa(run.Skipped),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Duration", "Total", "OK", "Failed", "Skipped"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the pairs of one run (ID or unique prefix)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func showRun(cmd *cobra.Command, store *history.Store, id string, jsonOutput bool) error {
	run, err := store.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %q not found", id)
	}
	pairs, err := store.RunPairs(cmd.Context(), run.ID)
	if err != nil {
		return err
	}
	if jsonOutput {
		if pairs == nil {
			pairs = []history.PairRecord{}
		}
		return writeJSON(cmd, struct {
			history.Run
			Pairs []history.PairRecord `json:"pairs"`
		}{Run: *run, Pairs: pairs})
	}

	out := cmd.OutOrStdout()
	newStatusWriter(out).section("Run " + run.ID)
	rows := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		detail := pair.ErrorKind
		if pair.ErrorMessage != "" {
			detail = pair.ErrorMessage
		}
		rows = append(rows, []string{
			pair.Name,
			string(pair.Status),
			strconv.Itoa(pair.Pairs),
			strconv.Itoa(pair.UnmatchedPrimary),
			strconv.Itoa(pair.UnmatchedSecondary),
			strconv.Itoa(pair.Duplicates),
			formatDuration(pair.Duration),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Pair", "Status", "Pairs", "Unmatched 1st", "Unmatched 2nd", "Dup", "Duration", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))
	return nil
}
