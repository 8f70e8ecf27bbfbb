package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/ember/internal/emberscore"
	"github.com/abhisek/ember/internal/records"
	"github.com/abhisek/ember/internal/report"
	"github.com/abhisek/ember/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score [file|-]",
	Short: "Compute the trust score of one piece of content",
	Long: "Reads a score input JSON document (curriculumReference, reviewStatus, " +
		"communityStats, errorReports) from a file or stdin and prints its trust score.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		persist, _ := cmd.Flags().GetBool("persist")
		contentID, _ := cmd.Flags().GetString("content-id")
		if persist && contentID == "" {
			return fmt.Errorf("--persist requires --content-id")
		}

		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		in, err := records.DecodeScoreInput(raw)
		if err != nil {
			return err
		}

		res := emberscore.Calculate(in)
		log.Debug().
			Int("score", res.Score).
			Str("tier", string(res.Tier)).
			Msg("score calculated")

		if persist {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			seq, err := s.ScoreRepo().Append(cmd.Context(), store.ScoreEventData{
				ContentID: contentID,
				Result:    res,
			})
			if err != nil {
				return fmt.Errorf("persist score: %w", err)
			}
			log.Info().Str("content_id", contentID).Int64("sequence", seq).Msg("score recorded")
		}

		out := cmd.OutOrStdout()
		if format == report.FormatJSON {
			return report.WriteJSON(out, res)
		}
		return report.Score(out, res, renderOptions(out))
	},
}

func init() {
	addOutputFlag(scoreCmd)
	scoreCmd.Flags().Bool("persist", false, "Record the score in the database")
	scoreCmd.Flags().String("content-id", "", "Content identifier used when persisting")
}
