package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/layout"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/talent"
)

// dragCommand moves one talent to a pixel position, as the editor does when
// a node is dropped, and writes the updated records.
func (c *CLI) dragCommand() *cobra.Command {
	var (
		flags   layoutFlags
		orderID int
		x, y    float64
		snap    bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "drag [tree.json]",
		Short: "Move a talent to a widget position",
		Long: `Move a talent to a widget position and write the updated records.

The position is in widget pixels, as reported by the editor after a drop.
It is converted back to grid coordinates with the same settings used for
layout, so a layout of the output places the talent at (x, y).

Without -o the records are written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.options(cmd, &flags)

			payload, err := readPayload(cmd, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			nodes, err := runner.Decode(ctx, payload, opts)
			if err != nil {
				return err
			}

			pos := graph.Position{X: x, Y: y}
			if snap {
				s, err := opts.Settings()
				if err != nil {
					return err
				}
				pos = layout.Snap(pos, s)
			}

			moved, l, err := runner.Drag(ctx, nodes, orderID, pos, opts)
			if err != nil {
				return err
			}
			i, _ := talent.Find(moved, orderID)
			c.Logger.Info("moved talent",
				"talent", moved[i].String(),
				"row", moved[i].Row,
				"column", moved[i].Column)

			if output == "" {
				return talent.WriteTo(cmd.OutOrStdout(), moved)
			}
			if err := talent.WriteFile(output, moved); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			printSuccess("Moved talent %s", moved[i].String())
			printKeyValue("Row", ftoa(moved[i].Row))
			printKeyValue("Column", ftoa(moved[i].Column))
			printFile(output)
			printStats(l, false)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&orderID, "id", 0, "order id of the talent to move")
	cmd.Flags().Float64Var(&x, "x", 0, "target x in widget pixels")
	cmd.Flags().Float64Var(&y, "y", 0, "target y in widget pixels")
	cmd.Flags().BoolVar(&snap, "snap", false, "snap the target to the nearest half cell")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
