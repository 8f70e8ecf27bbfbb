package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/ember/internal/emberscore"
	"github.com/abhisek/ember/internal/report"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List quality tiers and their score thresholds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if format == report.FormatJSON {
			infos := make([]emberscore.TierInfo, 0, 3)
			for _, t := range emberscore.AllTiers() {
				infos = append(infos, emberscore.GetTierInfo(t))
			}
			return report.WriteJSON(out, infos)
		}
		return report.Tiers(out, renderOptions(out))
	},
}

func init() {
	addOutputFlag(tiersCmd)
}
