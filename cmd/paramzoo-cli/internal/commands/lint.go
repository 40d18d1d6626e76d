package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightcone-ml/paramzoo/cmd/paramzoo-cli/internal/display"
	"github.com/lightcone-ml/paramzoo/pkg/corpus"
	"github.com/lightcone-ml/paramzoo/pkg/params"
)

func NewLintCommand() *cobra.Command {
	var jobs int
	var deep bool

	cmd := &cobra.Command{
		Use:   "lint <dir|manifest>...",
		Short: "Validate every manifest under the given paths",
		Long: `Discover manifest files under the given directories (recursively) and
validate them concurrently. Each manifest gets its own verdict; one broken
file never hides the verdicts of the rest.

With --deep, the data directories of valid training manifests are profiled
too: shard files are counted, example counts are read from the shard index
or the shards themselves, and datasets too small for the configured batch
layout are flagged.`,
		Example: `  # Lint a config tree
  paramzoo-cli lint configs/

  # Lint explicit files with 4 workers
  paramzoo-cli lint a.yaml b.yaml --jobs 4

  # Also profile the referenced data directories
  paramzoo-cli lint configs/ --deep`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifests, err := params.Discover(args...)
			if err != nil {
				return err
			}
			if len(manifests) == 0 {
				return fmt.Errorf("no manifest files under %v", args)
			}

			results := params.LintAll(cmd.Context(), manifests, params.LintOptions{Concurrency: jobs})

			failed := 0
			for _, res := range results {
				if !res.OK() {
					failed++
					fmt.Println(display.Fail(res.Path))
					fmt.Print(display.FormatLoadError(res.Err))
					continue
				}
				fmt.Println(display.Pass(res.Path, res.Family))
				if deep && res.Family == params.FamilyTraining {
					if err := profileTraining(cmd, res.Path); err != nil {
						failed++
						fmt.Print(display.FormatLoadError(err))
					}
				}
			}

			fmt.Printf("\n%d manifest(s): %d passed, %d failed\n",
				len(results), len(results)-failed, failed)
			if failed > 0 {
				return fmt.Errorf("%d manifest(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&jobs, "jobs", 0, "Concurrent validations (0 = one per CPU)")
	cmd.Flags().BoolVar(&deep, "deep", false, "Profile the data directories of valid training manifests")
	return cmd
}

// profileTraining digs into the data directories of one already-valid
// training manifest and prints shard statistics.
func profileTraining(cmd *cobra.Command, path string) error {
	resolved, err := params.LoadTraining(cmd.Context(), path)
	if err != nil {
		return err
	}
	cfg, err := resolved.Params()
	if err != nil {
		return err
	}

	type input struct {
		section string
		dir     string
		in      *params.InputParams
	}
	inputs := []input{
		{"train_input", resolved.TrainDataDir(), cfg.TrainInput},
		{"eval_input", resolved.EvalDataDir(), cfg.EvalInput},
	}

	for _, item := range inputs {
		if item.in == nil {
			continue
		}
		stats, err := corpus.Profile(cmd.Context(), item.dir, item.in.DataProcessor)
		if err != nil {
			return err
		}
		fmt.Print(display.FormatStats(item.section, item.dir, stats))
		if err := stats.CheckCapacity(item.in.BatchSize, cfg.RunConfig.NumReplicas); err != nil {
			return err
		}
	}
	return nil
}
