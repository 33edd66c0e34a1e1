package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowband/flowband/pkg/flow"
	"github.com/flowband/flowband/pkg/pipeline"
)

// orderCommand creates the order command, which prints the computed
// stack ordering without rendering anything. Useful as a starting point
// for hand-tuned --left-order/--right-order flags.
func (c *CLI) orderCommand() *cobra.Command {
	var (
		side         string
		leftColumn   string
		rightColumn  string
		weightColumn string
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "order [input]",
		Short: "Print the descending-weight category ordering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if side != "" && side != string(flow.SideLeft) && side != string(flow.SideRight) {
				return fmt.Errorf("invalid side: %q (must be 'left' or 'right')", side)
			}

			runner, err := c.newRunner(cmd, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			recs, err := runner.Load(cmd.Context(), pipeline.Options{
				Input:        args[0],
				LeftColumn:   leftColumn,
				RightColumn:  rightColumn,
				WeightColumn: weightColumn,
				Logger:       loggerFromContext(cmd.Context()),
			})
			if err != nil {
				return err
			}

			if side == "" || side == string(flow.SideLeft) {
				printOrdering(recs, flow.SideLeft)
			}
			if side == "" || side == string(flow.SideRight) {
				printOrdering(recs, flow.SideRight)
			}
			printNextStep("Fix an ordering", appName+" render "+args[0]+" --left-order a,b,c")
			return nil
		},
	}

	cmd.Flags().StringVar(&side, "side", "", "restrict output to one side: left, right")
	cmd.Flags().StringVar(&leftColumn, "left-column", "", "CSV column for left categories")
	cmd.Flags().StringVar(&rightColumn, "right-column", "", "CSV column for right categories")
	cmd.Flags().StringVar(&weightColumn, "weight-column", "", "CSV column for weights")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the dataset fetch cache")

	return cmd
}

// printOrdering lists one side's categories heaviest first.
func printOrdering(recs flow.Records, side flow.Side) {
	totals := recs.Totals(side)
	fmt.Println(StyleTitle.Render(string(side)))
	for i, label := range flow.OrderByWeight(recs, side) {
		printKeyValue(fmt.Sprintf("%2d. %s", i+1, label), fmt.Sprintf("%.2f", totals[label]))
	}
}
