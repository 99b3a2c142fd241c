// Package version provides version information and the version command for typetology.
package version

import (
	"fmt"
	"runtime/debug"
	"sort"
	"strings"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags:
//
//	-X github.com/altuslabsxyz/typetology/internal/version.Version={{.Version}}
//	-X github.com/altuslabsxyz/typetology/internal/version.GitCommit={{.FullCommit}}
//	-X github.com/altuslabsxyz/typetology/internal/version.BuildDate={{.Date}}
//
// Empty values fall back to the module build info.
var (
	Version   = ""
	GitCommit = ""
	BuildDate = ""
)

const (
	appName        = "typetology"
	appDescription = "Go bindings generator for smart contract ABIs"
	appURL         = "https://github.com/altuslabsxyz/typetology"
)

// Get returns the version info of the running binary.
func Get() goversion.Info {
	info := goversion.GetVersionInfo(
		goversion.WithAppDetails(appName, appDescription, appURL),
	)
	if Version != "" {
		info.GitVersion = Version
	}
	if GitCommit != "" {
		info.GitCommit = GitCommit
	}
	if BuildDate != "" {
		info.BuildDate = BuildDate
	}
	return info
}

// BuildDeps lists the module dependencies compiled into the binary.
func BuildDeps() []string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	deps := make([]string, 0, len(buildInfo.Deps))
	for _, dep := range buildInfo.Deps {
		depStr := fmt.Sprintf("%s@%s", dep.Path, dep.Version)
		if dep.Replace != nil {
			depStr = fmt.Sprintf("%s@%s => %s@%s", dep.Path, dep.Version, dep.Replace.Path, dep.Replace.Version)
		}
		deps = append(deps, depStr)
	}

	sort.Strings(deps)
	return deps
}

// NewCmd creates the version command.
// The command supports:
//   - --long: Also list build dependencies
//   - --json: Output in JSON format
func NewCmd() *cobra.Command {
	var (
		long       bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version information including build details. Use --long for dependency info.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := Get()
			w := cmd.OutOrStdout()

			if jsonOutput {
				out, err := info.JSONString()
				if err != nil {
					return err
				}
				fmt.Fprintln(w, out)
				return nil
			}

			fmt.Fprint(w, info.String())
			if long {
				fmt.Fprintln(w, "\nBuild dependencies:")
				fmt.Fprintln(w, "  "+strings.Join(BuildDeps(), "\n  "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&long, "long", false, "Show detailed version info including build dependencies")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info in JSON format")

	return cmd
}
