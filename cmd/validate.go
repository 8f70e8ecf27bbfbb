package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/ember/internal/mathcheck"
	"github.com/abhisek/ember/internal/records"
	"github.com/abhisek/ember/internal/report"
)

// errChecksFailed is returned by --strict runs with failing checks.
var errChecksFailed = errors.New("validation failed")

type validateOutput struct {
	QuestionID string                  `json:"questionId,omitempty"`
	Checks     []mathcheck.CheckResult `json:"checks"`
	Summary    mathcheck.Summary       `json:"summary"`
}

var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Verify the answers of one math question",
	Long: "Reads a math question JSON document from a file or stdin, re-derives " +
		"the answer from its verification expression and checks fraction formatting.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		strict, _ := cmd.Flags().GetBool("strict")
		persist, _ := cmd.Flags().GetBool("persist")

		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		q, err := records.DecodeMathQuestion(raw)
		if err != nil {
			return err
		}
		if id, _ := cmd.Flags().GetString("question-id"); id != "" {
			q.ID = id
		}
		if persist && q.ID == "" {
			return fmt.Errorf("--persist requires a question id (set \"id\" or --question-id)")
		}

		checks := mathcheck.Validate(q)
		summary := mathcheck.Summarize(checks)
		log.Debug().
			Int("checks", summary.Total).
			Int("failed", summary.Failed).
			Str("worst", string(summary.Worst)).
			Msg("question validated")

		if persist {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.CheckRepo().AppendAll(cmd.Context(), "", q.ID, checks); err != nil {
				return fmt.Errorf("persist checks: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		if format == report.FormatJSON {
			err = report.WriteJSON(out, validateOutput{QuestionID: q.ID, Checks: checks, Summary: summary})
		} else {
			err = report.Checks(out, checks, renderOptions(out))
		}
		if err != nil {
			return err
		}

		if strict && !summary.OK() {
			return fmt.Errorf("%w: %d of %d checks failed (worst: %s)",
				errChecksFailed, summary.Failed, summary.Total, summary.Worst)
		}
		return nil
	},
}

func init() {
	addOutputFlag(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Exit with an error when an error or critical check fails")
	validateCmd.Flags().Bool("persist", false, "Record the check results in the database")
	validateCmd.Flags().String("question-id", "", "Question identifier (overrides the document's id)")
}
