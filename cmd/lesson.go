package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/lessons"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Show, complete or regenerate today's lesson",
}

var lessonShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print today's lesson, generating it if needed",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		snap, err := startup(cmd.Context(), rt.engine)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(snap.State.CurrentLesson)
		}
		printLesson(os.Stdout, *snap.State.CurrentLesson, snap.CompletedToday())
		return nil
	},
}

var lessonCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark today's lesson as completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if _, err := startup(cmd.Context(), rt.engine); err != nil {
			return err
		}
		c, err := rt.engine.CompleteLesson(cmd.Context())
		if errors.Is(err, engine.ErrAlreadyCompleted) {
			fmt.Println("Today's lesson is already completed.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Println(engine.CompletedMessage)
		fmt.Printf("★ %d pts   🔥 %d day streak   📚 %d words\n",
			c.Ledger.Points, c.Ledger.Streak, c.Ledger.WordsMastered)
		for _, b := range c.Awarded {
			fmt.Printf("%s New badge: %s\n", b.Kind.Icon(), b.Name)
		}
		return nil
	},
}

var lessonRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Generate a new lesson for today, replacing the current one",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		rt.engine.Load(ctx)
		t, err := rt.engine.Retry(ctx)
		if err != nil {
			return err
		}
		snap, err := fetch(ctx, rt.engine, t)
		if err != nil {
			return err
		}
		printLesson(os.Stdout, *snap.State.CurrentLesson, snap.CompletedToday())
		return nil
	},
}

func init() {
	lessonShowCmd.Flags().Bool("json", false, "Print the lesson as JSON")

	lessonCmd.AddCommand(lessonShowCmd)
	lessonCmd.AddCommand(lessonCompleteCmd)
	lessonCmd.AddCommand(lessonRefreshCmd)
}

// startup loads the saved state and generates today's lesson when the
// saved one is missing or stale.
func startup(ctx context.Context, e *engine.Engine) (engine.Snapshot, error) {
	snap, ticket := e.Startup(ctx)
	if snap.State.Level == nil {
		return snap, fmt.Errorf("%w: run `lingo level set <%s>`", engine.ErrNoLevel, levelNames())
	}
	if ticket != nil {
		return fetch(ctx, e, *ticket)
	}
	if snap.State.CurrentLesson == nil {
		return snap, errors.New(engine.NoLessonMessage)
	}
	return snap, nil
}

func fetch(ctx context.Context, e *engine.Engine, t lessons.Ticket) (engine.Snapshot, error) {
	fmt.Fprintf(os.Stderr, "Generating a %s lesson...\n", t.Request.Level)
	snap, _ := e.RunFetch(ctx, t)
	if snap.Fetch == lessons.FetchFailed {
		return snap, errors.New(snap.Message)
	}
	if snap.State.CurrentLesson == nil {
		return snap, errors.New(engine.NoLessonMessage)
	}
	return snap, nil
}

func levelNames() string {
	names := make([]string, len(lessons.Levels))
	for i, l := range lessons.Levels {
		names[i] = string(l)
	}
	return strings.Join(names, "|")
}

func printLesson(w io.Writer, l lessons.Lesson, completed bool) {
	title := "Daily lesson · " + l.Date
	if completed {
		title += "  ✓ completed"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "Words: %s\n\n", strings.Join(l.Words, ", "))
	for i, s := range l.Sentences {
		fmt.Fprintf(w, "%2d. %s\n    %s\n", i+1, s.Source, s.Translation)
	}
}
