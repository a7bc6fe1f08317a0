package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/quiz"
)

var choiceLetters = []string{"A", "B", "C", "D"}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a review quiz built from your lesson history",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		rt.engine.Load(cmd.Context())
		session := rt.engine.StartQuiz()
		if session.Empty() {
			fmt.Println(quiz.InsufficientHistoryMessage)
			return nil
		}

		if answers, _ := cmd.Flags().GetBool("print"); answers {
			for i, q := range session.Questions {
				printQuestion(i, session.Total(), q)
				fmt.Printf("Answer: %s\nTranslation: %s\n\n", q.CorrectAnswer, q.Translation)
			}
			return nil
		}

		scanner := bufio.NewScanner(os.Stdin)
		for !session.Done() {
			q, _ := session.Current()
			printQuestion(session.Index(), session.Total(), q)

			fmt.Print("\nYour answer: ")
			if !scanner.Scan() {
				fmt.Println("\n(input closed)")
				break
			}
			option := ""
			if i := parseChoice(scanner.Text(), len(q.Options)); i >= 0 {
				option = q.Options[i]
			} else {
				fmt.Println("(skipped)")
			}
			if correct, _ := session.Answer(option); correct {
				fmt.Println("\033[32m✓ Correct!\033[0m")
			} else {
				fmt.Printf("\033[31m✗ Not quite.\033[0m Answer: %s\n", q.CorrectAnswer)
			}
			fmt.Printf("Translation: %s\n\n", q.Translation)
			session.Next()
		}

		fmt.Printf("── You scored %d out of %d ──\n", session.Score(), session.Total())
		return nil
	},
}

func init() {
	quizCmd.Flags().Bool("print", false, "Print the questions with answers instead of asking them")
}

func printQuestion(i, total int, q quiz.Question) {
	fmt.Printf("── Question %d of %d ──\n", i+1, total)
	fmt.Printf("Which sentence uses the word %q?\n", q.TargetWord)
	for j, o := range q.Options {
		fmt.Printf("  %s) %s\n", choiceLetters[j], o)
	}
}

// parseChoice accepts a letter (A-D) or a 1-based number.
func parseChoice(input string, n int) int {
	input = strings.ToUpper(strings.TrimSpace(input))
	for i := 0; i < n; i++ {
		if input == choiceLetters[i] || input == fmt.Sprint(i+1) {
			return i
		}
	}
	return -1
}
