package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/meshidx/internal/mesh"
	"github.com/Aman-CERP/meshidx/pkg/version"
)

// versionInfo is the --json output: build stamps plus the topologies this
// binary can generate.
type versionInfo struct {
	version.BuildInfo
	Topologies []string `json:"topologies"`
}

// newVersionCmd reports the build and the index layouts it writes, so an
// index file can be matched to the release that produced it.
func newVersionCmd() *cobra.Command {
	var jsonOutput, shortOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and supported topologies",
		Long: `Print the meshidx release, the index file format revision, build stamps
and the topologies this binary can generate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			switch {
			case shortOutput:
				_, err := fmt.Fprintln(w, version.Short())
				return err
			case jsonOutput:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(versionInfo{BuildInfo: version.GetInfo(), Topologies: mesh.Names()})
			}

			_, err := fmt.Fprintf(w, "%s\ntopologies: %s\n",
				version.String(), strings.Join(mesh.Names(), ", "))
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")
	cmd.Flags().BoolVar(&shortOutput, "short", false, "Output only the version number")

	return cmd
}
