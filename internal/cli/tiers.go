package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tiersCommand prints the point tiers and the dividers between them.
func (c *CLI) tiersCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "tiers [tree.json]",
		Short: "Show the point tiers and dividers of a talent tree",
		Args:  cobra.ExactArgs(1),
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

			prog := newProgress(c.Logger)
			nodes, err := runner.Decode(ctx, payload, opts)
			if err != nil {
				return err
			}
			l, cached, err := runner.LayoutWithCacheInfo(ctx, nodes, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Laid out %d talents", len(l.TalentNodes())))

			fmt.Println(StyleTitle.Render(args[0]))
			fmt.Println(tierTable(l))
			printStats(l, cached)
			printDiagnostics(l.Diagnostics)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
