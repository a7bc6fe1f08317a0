package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = selfupdate.DevVersion

// currentVersion prefers the ldflags version and falls back to the module
// version recorded by go install.
func currentVersion() string {
	if version != selfupdate.DevVersion {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return selfupdate.DevVersion
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("lingo", currentVersion())
	},
}
