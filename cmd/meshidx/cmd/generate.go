package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/meshidx/internal/generate"
	"github.com/Aman-CERP/meshidx/internal/mesh"
)

// topologyCommands are registered as top-level subcommands, in help order.
var topologyCommands = []string{
	mesh.TopologyGrid,
	mesh.TopologyFan,
	mesh.TopologyPoints,
	mesh.TopologySpiral,
}

// dimensionFlags registers --samples (-s) and --history (-c) on cmd. The
// shorthands match how the visualizer host invokes its index generators.
func dimensionFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("samples", "s", 0, "Sample size / row width (required)")
	cmd.Flags().IntP("history", "c", 0, "History / row count (required)")
}

// readDimensions returns validated dimensions from the required flags.
func readDimensions(cmd *cobra.Command) (mesh.Dimensions, error) {
	samples, err := requireInt(cmd, "samples")
	if err != nil {
		return mesh.Dimensions{}, err
	}
	history, err := requireInt(cmd, "history")
	if err != nil {
		return mesh.Dimensions{}, err
	}

	d := mesh.Dimensions{SampleSize: samples, History: history}
	if err := d.Validate(); err != nil {
		return mesh.Dimensions{}, err
	}
	return d, nil
}

// newTopologyCmd creates the generator command for one topology.
func newTopologyCmd(a *app, name string) *cobra.Command {
	topo, err := mesh.Lookup(name)
	if err != nil {
		panic(err) // topologyCommands only lists registered names
	}

	var outputPath string

	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Write %s indices: %s", name, topo.Description),
		Long: fmt.Sprintf(`Write the %s index list.

%s.
Records: %s

Use --output - to write to stdout.`, name, topo.Description, topo.Formula),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := readDimensions(cmd)
			if err != nil {
				return err
			}

			path := a.cfg.Output.Path
			if cmd.Flags().Changed("output") {
				path = outputPath
			}

			opts, err := a.writerOptions()
			if err != nil {
				return err
			}

			runner := generate.NewRunner(opts, cmd.OutOrStdout(), a.logger)
			res, err := runner.Run(cmd.Context(), generate.Request{
				Topology:   name,
				Dimensions: d,
				Output:     path,
			})
			if err != nil {
				return err
			}

			if path != generate.StdoutPath {
				out := a.status(cmd.ErrOrStderr())
				out.Successf("%s: wrote %d %s to %s", name, res.Records, topo.Kind, res.Path)
				if res.Records == 0 {
					out.Warningf("%s produced no records for %s", name, d)
				}
			}
			return nil
		},
	}

	dimensionFlags(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default from config, indices.txt)")

	return cmd
}
