package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kazuma-desu/showmore/pkg/output"
)

// Version info - set via ldflags at build time
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version, commit, build date, Go version, and platform.",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) error {
	format, err := resolveOutputFormat([]output.Format{output.FormatSimple, output.FormatJSON, output.FormatYAML}, nil)
	if err != nil {
		return err
	}

	info := versionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	switch format {
	case output.FormatJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case output.FormatYAML:
		return yaml.NewEncoder(os.Stdout).Encode(info)
	}

	fmt.Printf("showmore version %s\n", info.Version)
	fmt.Printf("  commit:     %s\n", info.Commit)
	fmt.Printf("  built:      %s\n", info.BuildDate)
	fmt.Printf("  go version: %s\n", info.GoVersion)
	fmt.Printf("  platform:   %s\n", info.Platform)
	return nil
}
