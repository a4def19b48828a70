package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/pipeline"
)

// artifactExt maps export formats to file extensions.
var artifactExt = map[string]string{
	pipeline.FormatJSON: ".layout.json",
	pipeline.FormatDOT:  ".dot",
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags    layoutFlags
		output   string
		formats  string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "layout [tree.json]",
		Short: "Lay out a talent tree for the editor widget",
		Long: `Lay out a talent tree for the editor widget.

The input is a JSON or YAML talent tree: an array of records, an object keyed
by order id, or either nested under "nodes" or "tree". Use - to read stdin.

The output is the widget's {"nodes": [...], "edges": [...]} document with the
tier table and any diagnostics. Tier dividers are added between point tiers
whose rows do not overlap.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			opts.Formats = parseFormats(formats)
			opts.Detailed = detailed
			return c.runLayout(cmd, args[0], output, flags.noCache, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output formats: json (default), dot (comma-separated)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include talent names in DOT labels")

	return cmd
}

// runLayout decodes the tree, lays it out and writes each artifact.
func (c *CLI) runLayout(cmd *cobra.Command, input, output string, noCache bool, opts pipeline.Options) error {
	ctx := cmd.Context()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	payload, err := readPayload(cmd, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, payload, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := artifactPaths(input, output, opts.Formats)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", paths[format], err)
		}
	}

	printSuccess("Layout complete")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Layout, result.CacheInfo.LayoutHit)
	printDiagnostics(result.Layout.Diagnostics)
	printNewline()
	printNextStep("Inspect tiers", appName+" tiers "+input)

	return nil
}

// artifactPaths names one output file per format. An explicit output path is
// used verbatim when a single format is requested.
func artifactPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := outputBase(input, output)
	for _, f := range formats {
		paths[f] = base + artifactExt[f]
	}
	return paths
}
