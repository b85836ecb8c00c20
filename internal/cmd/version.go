package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		u := newUI()

		u.Println(u.Header("Statement Enricher"))
		u.Println("")
		u.Println(u.KeyValue("Version", Version))
		u.Println(u.KeyValue("Git Commit", GitCommit))
		u.Println(u.KeyValue("Built", BuildDate))
		u.Println(u.KeyValue("Go Version", runtime.Version()))
		u.Println(u.KeyValue("OS/Arch", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = Version
}
