package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/lessons"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Show or change your level",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		snap := rt.engine.Load(cmd.Context())
		if snap.State.Level == nil {
			fmt.Printf("No level chosen. Run `lingo level set <%s>`.\n", levelNames())
			return nil
		}
		fmt.Println(*snap.State.Level)
		return nil
	},
}

var levelSetCmd = &cobra.Command{
	Use:   "set <level>",
	Short: "Choose a level and generate a lesson for it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := lessons.ParseLevel(args[0])
		if err != nil {
			return err
		}

		rt, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		rt.engine.Load(ctx)
		t, err := rt.engine.SelectLevel(ctx, level)
		if err != nil {
			return err
		}
		fmt.Printf("Level set to %s.\n", level)

		snap, err := fetch(ctx, rt.engine, t)
		if err != nil {
			return err
		}
		printLesson(os.Stdout, *snap.State.CurrentLesson, snap.CompletedToday())
		return nil
	},
}

func init() {
	levelCmd.AddCommand(levelSetCmd)
}
