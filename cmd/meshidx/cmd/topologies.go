package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/meshidx/internal/mesh"
)

type topologyInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Formula     string `json:"formula"`
}

// newTopologiesCmd lists the registered topologies.
func newTopologiesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "topologies",
		Short: "List available topologies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var infos []topologyInfo
			for _, t := range mesh.All() {
				infos = append(infos, topologyInfo{
					Name:        t.Name,
					Kind:        t.Kind.String(),
					Description: t.Description,
					Formula:     t.Formula,
				})
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tKIND\tDESCRIPTION")
			for _, info := range infos {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, info.Kind, info.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
