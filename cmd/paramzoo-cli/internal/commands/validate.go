package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightcone-ml/paramzoo/cmd/paramzoo-cli/internal/display"
	"github.com/lightcone-ml/paramzoo/pkg/params"
	"github.com/lightcone-ml/paramzoo/pkg/registry"
)

func NewValidateCommand() *cobra.Command {
	var record bool
	var registryPath string

	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Validate one manifest and report every problem in it",
		Long: `Load a training or preprocessing manifest, apply defaults, and run the
full validation pipeline: strict schema decode, per-field range checks,
cross-field rules, and referenced-input existence.

The family is detected from the document's top-level sections, and every
problem in the manifest is reported in one pass, so one edit cycle can fix
them all.`,
		Example: `  # Validate a training manifest
  paramzoo-cli validate configs/gpt2_small.yaml

  # Validate and record the verdict in the local registry
  paramzoo-cli validate configs/gpt2_small.yaml --record

  # Use a shared registry database
  paramzoo-cli validate configs/bert_base.yaml --record --registry /data/paramzoo.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			resolved, err := params.Load(cmd.Context(), path)
			if err != nil {
				fmt.Println(display.Fail(path))
				fmt.Print(display.FormatLoadError(err))
				return fmt.Errorf("manifest failed validation")
			}

			fmt.Println(display.Pass(path, resolved.Family()))

			if !record {
				return nil
			}
			return recordResolved(cmd, registryPath, resolved)
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "Record the validated manifest in the registry")
	cmd.Flags().StringVar(&registryPath, "registry", "paramzoo.db", "Registry database path")
	return cmd
}

// recordResolved writes one validated manifest into the ledger.
func recordResolved(cmd *cobra.Command, registryPath string, resolved params.Resolved) error {
	reg, err := registry.Open(registryPath)
	if err != nil {
		return err
	}
	defer reg.Close()

	entry := registry.Entry{
		Fingerprint: resolved.Fingerprint(),
		Path:        resolved.Path(),
		Family:      string(resolved.Family()),
	}
	if t, ok := resolved.(*params.ResolvedTraining); ok {
		entry.Mode = string(t.Mode())
		entry.MaxSteps = t.MaxSteps()
	}

	if err := reg.Record(cmd.Context(), entry); err != nil {
		return err
	}
	fmt.Printf("recorded %s in %s\n", entry.Fingerprint[:12], registryPath)
	return nil
}
