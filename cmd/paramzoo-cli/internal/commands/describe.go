package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightcone-ml/paramzoo/cmd/paramzoo-cli/internal/display"
	"github.com/lightcone-ml/paramzoo/pkg/params"
)

func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <manifest>",
		Short: "Show the resolved form of a manifest",
		Long: `Load a manifest and print what the run would actually use: applied
defaults, absolute paths, derived quantities like the attention head size
and the effective shuffle buffer, and the document fingerprint.

The manifest must validate; describe never shows a half-usable document.`,
		Example: `  # Describe a training manifest
  paramzoo-cli describe configs/gpt2_small.yaml

  # Describe a preprocessing manifest
  paramzoo-cli describe configs/owt_preprocess.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := params.Load(cmd.Context(), args[0])
			if err != nil {
				fmt.Println(display.Fail(args[0]))
				fmt.Print(display.FormatLoadError(err))
				return fmt.Errorf("manifest failed validation")
			}

			var summary string
			switch r := resolved.(type) {
			case *params.ResolvedTraining:
				summary, err = display.FormatTrainingSummary(r)
			case *params.ResolvedPreprocessing:
				summary, err = display.FormatPreprocessingSummary(r)
			default:
				return fmt.Errorf("unrecognized manifest family %q", resolved.Family())
			}
			if err != nil {
				return err
			}

			fmt.Print(summary)
			return nil
		},
	}
}
