package cmd

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lingo",
	Short: "Daily English lessons for Arabic speakers",
	Long: "Lingo — a terminal app that generates a short English lesson every day, " +
		"with Arabic translations, pronunciation practice and review quizzes.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine.
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGO_DB env var)")
	rootCmd.PersistentFlags().Bool("guard-repeat", false,
		"Refuse to complete a lesson that is already in the history (or set LINGO_GUARD_REPEAT)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LINGO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// guardRepeat reads --guard-repeat, then LINGO_GUARD_REPEAT.
func guardRepeat(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("guard-repeat") {
		v, _ := cmd.Flags().GetBool("guard-repeat")
		return v
	}
	v, _ := strconv.ParseBool(os.Getenv("LINGO_GUARD_REPEAT"))
	return v
}
