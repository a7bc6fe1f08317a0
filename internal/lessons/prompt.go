package lessons

import (
	"fmt"
	"strings"
)

const lessonSystemPrompt = `You are an expert English teacher creating a daily lesson for an Arabic-speaking student. Your entire response must be a single, valid JSON object that strictly follows the provided schema.`

func buildLessonUserMessage(level Level, avoid []string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Student level: %s\n\n", level))
	b.WriteString("The lesson must contain:\n")
	b.WriteString(fmt.Sprintf("1. \"words\": %d-%d unique and useful English vocabulary words suitable for a %s learner.\n",
		MinWords, MaxWords, level))
	b.WriteString(fmt.Sprintf("2. \"sentences\": exactly %d unique, meaningful English sentences.\n", SentenceCount))
	b.WriteString("   - Each sentence must naturally incorporate at least one of the words from the \"words\" list.\n")
	b.WriteString("   - For each sentence, provide a clear and accurate Arabic translation.\n")
	b.WriteString(fmt.Sprintf("   - The difficulty of the sentences must match the %s level.\n", level))

	if len(avoid) > 0 {
		b.WriteString("\nThe student has already studied these words; choose different ones:\n")
		b.WriteString(strings.Join(avoid, ", "))
		b.WriteString("\n")
	}

	return b.String()
}
