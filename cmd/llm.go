package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM calls made for lessons and pronunciation tips",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(ctx, opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(events) == 0 {
				fmt.Println("No LLM calls recorded.")
				return nil
			}

			t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Latency", "")
			for _, e := range events {
				t.Row(
					strconv.Itoa(e.ID),
					e.Timestamp.Local().Format("Jan 02 15:04:05"),
					e.Purpose,
					truncate(e.Model, 28),
					strconv.Itoa(e.InputTokens),
					strconv.Itoa(e.OutputTokens),
					(time.Duration(e.LatencyMs) * time.Millisecond).String(),
					mark(e.Success),
				)
			}
			fmt.Println(t.Render())
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(ctx, id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			fmt.Printf("Call #%d  %s  %s\n", e.ID, mark(e.Success), e.Timestamp.Local().Format(time.DateTime))
			fmt.Printf("  purpose  %s\n", e.Purpose)
			fmt.Printf("  model    %s (%s)\n", e.Model, e.Provider)
			fmt.Printf("  tokens   %d in, %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Printf("  latency  %dms\n", e.LatencyMs)
			if e.ErrorMessage != "" {
				fmt.Printf("  error    %s\n", e.ErrorMessage)
			}

			section("Prompt", e.RequestBody)
			section("Reply", prettyJSON(e.ResponseBody))
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			byPurpose, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Println("No LLM usage recorded yet.")
				return nil
			}

			var calls, in, out int
			t := newTable("Purpose", "Calls", "Input", "Output", "Avg latency")
			for _, u := range byPurpose {
				t.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
					strconv.Itoa(u.OutputTokens), fmt.Sprintf("%dms", u.AvgLatencyMs))
				calls += u.Calls
				in += u.InputTokens
				out += u.OutputTokens
			}
			t.Row("total", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), "")
			fmt.Println(t.Render())

			byModel, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}

			var total float64
			var unpriced []string
			ct := newTable("Model", "Calls", "Input", "Output", "Cost (USD)")
			for _, u := range byModel {
				cost := "?"
				if c, ok := llm.EstimateCost(u.Model, u.InputTokens, u.OutputTokens); ok {
					total += c
					cost = formatCost(c)
				} else {
					unpriced = append(unpriced, u.Model)
				}
				ct.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
					strconv.Itoa(u.OutputTokens), cost)
			}
			label := "total"
			if len(unpriced) > 0 {
				label = "total (partial)"
			}
			ct.Row(label, "", "", "", formatCost(total))

			fmt.Println()
			fmt.Println(ct.Render())
			if len(unpriced) > 0 {
				fmt.Printf("No pricing for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

var llmPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete recorded LLM calls older than a cutoff",
	RunE: func(cmd *cobra.Command, args []string) error {
		olderThan, _ := cmd.Flags().GetDuration("older-than")
		if olderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}
		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			n, err := repo.PruneLLMEvents(ctx, time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d LLM call(s).\n", n)
			return nil
		})
	},
}

// withEvents opens the store named by --db for the duration of fn.
func withEvents(cmd *cobra.Command, fn func(context.Context, store.EventRepo) error) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(cmd.Context(), s.EventRepo())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				s = s.Bold(true)
			}
			return s
		})
}

func section(title, body string) {
	fmt.Printf("\n── %s %s\n", title, strings.Repeat("─", max(0, 56-len(title))))
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

// prettyJSON indents body when it is JSON and returns it unchanged
// otherwise.
func prettyJSON(body string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls for this purpose ("+llm.PurposeLesson+" or "+llm.PurposeFeedback+")")
	llmListCmd.Flags().Duration("since", 0, "Only show calls newer than this (e.g. 24h)")

	llmPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Delete calls older than this")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd, llmPruneCmd)
}
