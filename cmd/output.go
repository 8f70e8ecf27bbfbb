package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abhisek/ember/internal/report"
)

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", string(report.FormatText), "Output format (text or json)")
}

func outputFormat(cmd *cobra.Command) (report.Format, error) {
	v, _ := cmd.Flags().GetString("output")
	return report.ParseFormat(v)
}

// renderOptions enables color only when writing to a terminal and
// NO_COLOR is unset.
func renderOptions(w io.Writer) report.Options {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return report.Options{}
	}
	return report.Options{Color: isatty.IsTerminal(f.Fd())}
}

// readInput returns the contents of the file named by args[0], or stdin
// when no argument or "-" is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
