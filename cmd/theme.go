package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/state"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Set the color theme, or toggle it when none is given",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(state.ThemeLight), string(state.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		rt.engine.Load(ctx)

		if len(args) == 0 {
			fmt.Println("Theme:", rt.engine.ToggleTheme(ctx))
			return nil
		}
		t, ok := state.ParseTheme(args[0])
		if !ok {
			return fmt.Errorf("%w: %q", engine.ErrInvalidTheme, args[0])
		}
		if err := rt.engine.SetTheme(ctx, t); err != nil {
			return err
		}
		fmt.Println("Theme:", t)
		return nil
	},
}
