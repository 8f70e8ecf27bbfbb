package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/ember/internal/report"
	"github.com/abhisek/ember/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history <content-id>",
	Short: "Show recorded scores for a piece of content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.ScoreRepo().History(cmd.Context(), args[0], store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		out := cmd.OutOrStdout()
		if format == report.FormatJSON {
			if events == nil {
				events = []store.ScoreEvent{}
			}
			return report.WriteJSON(out, events)
		}
		return report.History(out, args[0], events, renderOptions(out))
	},
}

func init() {
	addOutputFlag(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Maximum number of scores to show (0 = all)")
}
