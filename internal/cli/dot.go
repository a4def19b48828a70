package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/pipeline"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/render/nodelink"
)

// dotCommand exports a laid out tree as Graphviz DOT.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		flags    layoutFlags
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "dot [tree.json]",
		Short: "Export a talent tree as Graphviz DOT",
		Long: `Export a talent tree as Graphviz DOT with pinned node positions.

Render the result with neato -n2, which keeps the computed positions:

  ttm dot tree.json | neato -n2 -Tsvg > tree.svg

The document is parsed back with Graphviz before it is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.options(cmd, &flags)
			opts.Formats = []string{pipeline.FormatDOT}
			opts.Detailed = detailed

			payload, err := readPayload(cmd, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			result, err := runner.Execute(ctx, payload, opts)
			if err != nil {
				return err
			}
			dot := result.Artifacts[pipeline.FormatDOT]

			stats, err := nodelink.Validate(string(dot))
			if err != nil {
				return fmt.Errorf("validate DOT: %w", err)
			}
			c.Logger.Debug("validated DOT", "nodes", stats.Nodes, "edges", stats.Edges)

			if output == "" {
				_, err := cmd.OutOrStdout().Write(dot)
				return err
			}
			if err := os.WriteFile(output, dot, 0644); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			printSuccess("Exported DOT")
			printFile(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include talent names in labels")
	return cmd
}
