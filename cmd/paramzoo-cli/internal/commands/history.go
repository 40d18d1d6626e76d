package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightcone-ml/paramzoo/cmd/paramzoo-cli/internal/display"
	"github.com/lightcone-ml/paramzoo/pkg/registry"
)

func NewHistoryCommand() *cobra.Command {
	var registryPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List manifests recorded in the registry",
		Long: `Show the validation ledger: every manifest recorded with
'validate --record', newest first, with its family, fingerprint, and the
run facts captured at validation time.`,
		Example: `  # Show the most recent validations
  paramzoo-cli history

  # Show everything in a shared registry
  paramzoo-cli history --registry /data/paramzoo.db --limit 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Open(registryPath)
			if err != nil {
				return err
			}
			defer reg.Close()

			entries, err := reg.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			fmt.Print(display.FormatHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&registryPath, "registry", "paramzoo.db", "Registry database path")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show (0 = all)")
	return cmd
}
