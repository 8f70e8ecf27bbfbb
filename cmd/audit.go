package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/ember/internal/audit"
	"github.com/abhisek/ember/internal/records"
	"github.com/abhisek/ember/internal/report"
	"github.com/abhisek/ember/internal/store"
)

var auditCmd = &cobra.Command{
	Use:   "audit <bundle>",
	Short: "Score and validate every item of a content bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		noPersist, _ := cmd.Flags().GetBool("no-persist")
		strict, _ := cmd.Flags().GetBool("strict")

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read bundle: %w", err)
		}
		bundle, err := records.DecodeBundle(raw)
		if err != nil {
			return err
		}

		var s *store.Store
		if !noPersist {
			s, err = openStore()
			if err != nil {
				return err
			}
			defer s.Close()
		}

		run, err := audit.NewRunner(s, cfg.Workers).Run(cmd.Context(), bundle)
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		out := cmd.OutOrStdout()
		if format == report.FormatJSON {
			err = report.WriteJSON(out, run)
		} else {
			err = report.AuditRun(out, run, renderOptions(out))
		}
		if err != nil {
			return err
		}

		if strict && (run.Stats.CriticalFailures > 0 || run.Stats.InvalidItems > 0) {
			return fmt.Errorf("%w: %d critical failures, %d invalid items",
				errChecksFailed, run.Stats.CriticalFailures, run.Stats.InvalidItems)
		}
		return nil
	},
}

func init() {
	addOutputFlag(auditCmd)
	auditCmd.Flags().Bool("no-persist", false, "Do not record results in the database")
	auditCmd.Flags().Bool("strict", false, "Exit with an error on critical failures or invalid items")
}
