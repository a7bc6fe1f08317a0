package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and Prometheus metrics on localhost",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		rt, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		if _, ticket := rt.engine.Startup(ctx); ticket != nil {
			t := *ticket
			go rt.engine.RunFetch(ctx, t)
		}

		fmt.Printf("Listening on http://%s\n", addr)
		return server.New(rt.engine, rt.logger).ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", server.DefaultAddr, "Address to listen on")
}
