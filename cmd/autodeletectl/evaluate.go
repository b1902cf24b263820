package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"autodelete-after-play/internal/autodelete"
	"autodelete-after-play/internal/mediatypes"
)

// evaluation is the dry-run result printed by the evaluate command.
type evaluation struct {
	Path      string              `json:"path"`
	MediaType string              `json:"mediaType"`
	Enabled   bool                `json:"enabled"`
	Decision  autodelete.Decision `json:"decision"`
	Method    string              `json:"method,omitempty"`
}

func newEvaluateCmd(opts *rootOptions) *cobra.Command {
	var (
		elapsed   int64
		duration  int64
		mediaType string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <path>",
		Short: "Show what the policy would decide for a play, without deleting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if elapsed < 0 || duration < 0 {
				return fmt.Errorf("--elapsed and --duration must not be negative")
			}

			db, store, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer db.Close()

			path := args[0]
			mt := mediatypes.Resolve(mediaType, path)
			policy := store.Policy()

			ev := evaluation{
				Path:      path,
				MediaType: string(mt),
				Enabled:   store.MediaFlags().Allows(mt),
				Decision:  autodelete.Decide(path, elapsed, duration, policy),
			}
			if ev.Enabled && ev.Decision.Delete {
				ev.Method = "permanent"
				if policy.RecycleEnabled {
					ev.Method = "trash"
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ev)
			}
			return writeEvaluation(cmd, ev)
		},
	}

	cmd.Flags().Int64Var(&elapsed, "elapsed", 0, "seconds the file was played")
	cmd.Flags().Int64Var(&duration, "duration", 0, "full duration of the file in seconds")
	cmd.Flags().StringVar(&mediaType, "type", "", "media type (video, audio, image); derived from the extension when empty")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	_ = cmd.MarkFlagRequired("elapsed")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func writeEvaluation(cmd *cobra.Command, ev evaluation) error {
	out := cmd.OutOrStdout()
	d := ev.Decision

	if !ev.Enabled {
		_, err := fmt.Fprintf(out, "keep: deletion of %s files is disabled\n", ev.MediaType)
		return err
	}
	if !d.Delete {
		_, err := fmt.Fprintf(out, "keep: %s (played %ds, threshold %ds)\n",
			d.Reason, d.ElapsedSeconds, d.MinRequiredSeconds)
		return err
	}
	_, err := fmt.Fprintf(out, "delete via %s (played %ds, threshold %ds)\n",
		ev.Method, d.ElapsedSeconds, d.MinRequiredSeconds)
	return err
}
