package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightcone-ml/paramzoo/cmd/paramzoo-cli/internal/display"
	"github.com/lightcone-ml/paramzoo/pkg/params"
)

func NewScheduleCommand() *cobra.Command {
	var at []int64
	var samples int

	cmd := &cobra.Command{
		Use:   "schedule <manifest>",
		Short: "Resolve the learning-rate schedule of a training manifest",
		Long: `Load a training manifest and print its learning-rate curve: the segment
table, then the resolved rate at sampled steps, or at the exact steps given
with --at.

Steps beyond the schedule's span show the held final value, exactly as the
training runtime would apply it.`,
		Example: `  # Show the curve at evenly spaced steps
  paramzoo-cli schedule configs/gpt2_small.yaml

  # Resolve specific steps (warmup boundary, end of run)
  paramzoo-cli schedule configs/gpt2_small.yaml --at 0 --at 346 --at 24333`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := params.LoadTraining(cmd.Context(), args[0])
			if err != nil {
				fmt.Println(display.Fail(args[0]))
				fmt.Print(display.FormatLoadError(err))
				return fmt.Errorf("manifest failed validation")
			}

			r := resolved.Schedule()
			fmt.Print(display.FormatSegments(r.Segments()))

			steps := at
			if len(steps) == 0 {
				steps = sampleSteps(resolved, samples)
			}
			fmt.Print(display.FormatRates(r, steps))
			return nil
		},
	}

	cmd.Flags().Int64SliceVar(&at, "at", nil, "Resolve these exact steps instead of sampling")
	cmd.Flags().IntVar(&samples, "samples", 11, "Evenly spaced sample count")
	return cmd
}

// sampleSteps spreads n steps evenly across the schedule span, falling back
// to the run's step budget when the schedule is unbounded.
func sampleSteps(resolved *params.ResolvedTraining, n int) []int64 {
	if n < 2 {
		n = 2
	}

	span, bounded := resolved.Schedule().TotalSteps()
	if !bounded || span == 0 {
		span = resolved.MaxSteps()
	}
	last := span - 1
	if last < 1 {
		last = 1
	}

	steps := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		steps = append(steps, last*int64(i)/int64(n-1))
	}
	return steps
}
