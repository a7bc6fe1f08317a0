package lessons

// Lesson shape requested from the generator.
const (
	MinWords      = 5
	MaxWords      = 7
	SentenceCount = 10
)

// Config holds lesson generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for lesson generation.
// Ten sentences plus their Arabic translations fit comfortably in 2048 tokens.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.8,
	}
}
