package speech

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Config selects the speech backends.
type Config struct {
	// TTS is "google" or "off".
	TTS string
	// Voice is the Google voice name, e.g. "en-US-Standard-F".
	Voice        string
	LanguageCode string
	// Player is the command used to play an mp3 file; the file path is
	// appended as the last argument. Empty means autodetect.
	Player string
	// CacheDir stores synthesized audio keyed by voice and text.
	CacheDir string
	// STTCommand, when set, is run once per attempt; its stdout is the
	// transcript. Otherwise the learner types what they said.
	STTCommand string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		TTS:          "google",
		Voice:        "en-US-Standard-F",
		LanguageCode: "en-US",
		CacheDir:     defaultCacheDir(),
	}
}

// ConfigFromEnv reads LINGO_TTS, LINGO_TTS_VOICE, LINGO_AUDIO_PLAYER,
// LINGO_AUDIO_CACHE and LINGO_STT_COMMAND over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LINGO_TTS"); v != "" {
		cfg.TTS = strings.ToLower(v)
	}
	if v := os.Getenv("LINGO_TTS_VOICE"); v != "" {
		cfg.Voice = v
		if parts := strings.SplitN(v, "-", 3); len(parts) == 3 {
			cfg.LanguageCode = parts[0] + "-" + parts[1]
		}
	}
	if v := os.Getenv("LINGO_AUDIO_PLAYER"); v != "" {
		cfg.Player = v
	}
	if v := os.Getenv("LINGO_AUDIO_CACHE"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("LINGO_STT_COMMAND"); v != "" {
		cfg.STTCommand = v
	}
	return cfg
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "lingo", "audio")
	}
	return filepath.Join(os.TempDir(), "lingo-audio")
}

// knownPlayers are tried in order when no player is configured.
var knownPlayers = [][]string{
	{"mpg123", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"afplay"},
	{"mpv", "--no-video", "--really-quiet"},
}

// resolvePlayer returns the player argv, or nil if none is available.
func resolvePlayer(configured string) []string {
	if configured != "" {
		argv := strings.Fields(configured)
		if _, err := exec.LookPath(argv[0]); err == nil {
			return argv
		}
		return nil
	}
	for _, argv := range knownPlayers {
		if _, err := exec.LookPath(argv[0]); err == nil {
			return argv
		}
	}
	return nil
}
