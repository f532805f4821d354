package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"dualsub/internal/pairjob"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// syncPayload is the --json shape of a single sync: the outcome plus the
// classified failure, if any.
type syncPayload struct {
	pairjob.Outcome
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

func newSyncPayload(outcome pairjob.Outcome, err error) syncPayload {
	payload := syncPayload{Outcome: outcome}
	if err != nil {
		payload.Error = err.Error()
		payload.ErrorKind = pairjob.KindOf(err)
	}
	return payload
}
