package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer lingo release exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		current := currentVersion()
		if current == selfupdate.DevVersion {
			fmt.Println("This is a development build; update with git pull and go build.")
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: current})
		if err != nil {
			return err
		}
		if !res.UpdateAvailable {
			fmt.Printf("lingo %s is the latest release.\n", current)
			return nil
		}

		fmt.Printf("lingo %s is available (running %s).\n\n", res.LatestVersion, current)
		fmt.Printf("  Release notes: %s\n", res.ReleaseURL)
		fmt.Printf("  Install:       %s\n", selfupdate.InstallCommand(res.LatestVersion))
		return nil
	},
}
