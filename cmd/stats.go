package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		snap := rt.engine.Load(cmd.Context())
		st := snap.State
		p := st.Progress

		level := "(not chosen)"
		if st.Level != nil {
			level = string(*st.Level)
		}

		fmt.Printf("Level:          %s\n", level)
		fmt.Printf("Points:         %d\n", p.Points)
		fmt.Printf("Streak:         %d day(s)\n", p.Streak)
		fmt.Printf("Words mastered: %d\n", p.WordsMastered)
		fmt.Printf("Lessons done:   %d (%d sentences)\n", len(st.History), st.History.SentenceCount())
		if len(st.History) > 0 {
			fmt.Printf("Last lesson:    %s\n", st.History[0].Date)
		}

		printBadges(os.Stdout, p)

		if goals := p.NextGoals(); len(goals) > 0 {
			fmt.Println()
			fmt.Println("Next goals")
			fmt.Println(strings.Repeat("─", 40))
			for _, g := range goals {
				fmt.Printf("%s %-20s %d more\n", g.Badge.Kind.Icon(), g.Badge.Name, g.Remaining())
			}
		}
		return nil
	},
}

// printBadges lists earned badges in the order they were earned, then the
// ones still locked.
func printBadges(w io.Writer, p progress.Ledger) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Badges")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for _, name := range p.Badges {
		b, ok := progress.LookupBadge(name)
		if !ok {
			fmt.Fprintf(w, "✓ ·  %s\n", name)
			continue
		}
		fmt.Fprintf(w, "✓ %s %-20s %s %d\n", b.Kind.Icon(), b.Name, b.Kind.DisplayName(), b.Threshold)
	}
	for _, b := range progress.Catalog {
		if !p.HasBadge(b.Name) {
			fmt.Fprintf(w, "  %s %-20s %s %d\n", b.Kind.Icon(), b.Name, b.Kind.DisplayName(), b.Threshold)
		}
	}
}
