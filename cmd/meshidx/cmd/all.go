package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/meshidx/internal/generate"
)

// newAllCmd creates the command that writes every topology at once.
func newAllCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Write every topology into a directory",
		Long: `Write grid.txt, fan.txt, points.txt and spiral.txt into --dir for the
same dimensions. Nothing is written unless every topology accepts them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := readDimensions(cmd)
			if err != nil {
				return err
			}

			opts, err := a.writerOptions()
			if err != nil {
				return err
			}

			runner := generate.NewRunner(opts, cmd.OutOrStdout(), a.logger)
			results, err := runner.RunAll(cmd.Context(), d, dir)
			if err != nil {
				return err
			}

			out := a.status(cmd.ErrOrStderr())
			var (
				records int
				size    int64
			)
			for _, res := range results {
				out.Successf("%s: wrote %d records to %s", res.Topology, res.Records, res.Path)
				records += res.Records
				size += res.Bytes
			}
			out.Newline()
			out.KeyValue("dimensions", d)
			out.KeyValue("records", records)
			out.KeyValue("bytes", size)
			return nil
		},
	}

	dimensionFlags(cmd)
	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory")

	return cmd
}
