package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lightcone-ml/paramzoo/cmd/paramzoo-cli/internal/commands"
)

var rootCmd = &cobra.Command{
	Use:   "paramzoo-cli",
	Short: "Validate and inspect training and preprocessing manifests",
	Long: `A command-line interface for the paramzoo manifest loader. It validates
training and preprocessing YAML manifests the way the run scheduler would,
and reports every problem in a document in one pass.

The CLI provides:
- Single-manifest validation with full error reporting
- Concurrent linting of whole config trees, with optional data profiling
- Learning-rate schedule resolution at arbitrary steps
- Resolved-manifest summaries with derived quantities
- A local ledger of validated manifests`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(
		commands.NewValidateCommand(),
		commands.NewLintCommand(),
		commands.NewScheduleCommand(),
		commands.NewDescribeCommand(),
		commands.NewHistoryCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
