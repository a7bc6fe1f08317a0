package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/llm"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated lessons for a level (no database)",
	Long: `Generate and print lessons for a level.

This is a stateless developer tool — no database, no progress, no events.
Useful for evaluating lesson quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("level", string(lessons.Beginner), "Lesson level: "+levelNames())
	previewCmd.Flags().Int("count", 1, "Number of lessons to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	levelVal, _ := cmd.Flags().GetString("level")
	count, _ := cmd.Flags().GetInt("count")

	level, err := lessons.ParseLevel(levelVal)
	if err != nil {
		return err
	}

	cfg, err := llm.Resolve()
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	// previews are not recorded in the event log
	ctx := context.Background()
	provider, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	gen := lessons.NewLLMGenerator(provider, lessons.DefaultConfig())
	fmt.Printf("Provider: %s — level %s\n", cfg.Provider, level)
	fmt.Printf("Generating %d lesson(s)...\n\n", count)

	var avoid []string
	today := lessons.Today(time.Now())
	for i := 1; i <= count; i++ {
		c, err := gen.Generate(ctx, lessons.Request{Level: level, Avoid: avoid})
		if err != nil {
			fmt.Printf("Lesson %d: generation failed: %v\n\n", i, err)
			continue
		}
		avoid = append(avoid, c.Words...)

		fmt.Printf("── Lesson %d/%d ──\n", i, count)
		printLesson(os.Stdout, lessons.Lesson{Date: today, Words: c.Words, Sentences: c.Sentences}, false)
		fmt.Println()
	}
	return nil
}
