// Package speech provides text-to-speech playback and speech-recognition
// backends for terminal use.
package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// ErrUnavailable means speech synthesis cannot be used here. It is reported
// to the learner and is never an application fault.
var ErrUnavailable = errors.New("sorry, text-to-speech is not available")

// Speaker reads text aloud. Speak returns ErrUnavailable immediately when
// it cannot; otherwise playback continues in the background.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Synthesizer turns text into mp3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Voice() string
}

// Unavailable is a Speaker that always reports ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Speak(context.Context, string) error { return ErrUnavailable }

// PlayFunc plays the audio file at path.
type PlayFunc func(ctx context.Context, path string) error

// CachedSpeaker synthesizes each distinct text once, keeps the mp3 on disk,
// and plays it with an external player.
type CachedSpeaker struct {
	synth    Synthesizer
	cacheDir string
	play     PlayFunc
	logger   *slog.Logger

	mu      sync.Mutex
	playing context.CancelFunc
	wg      sync.WaitGroup
}

// NewCachedSpeaker creates a speaker. play is usually CommandPlayer.
func NewCachedSpeaker(synth Synthesizer, cacheDir string, play PlayFunc, logger *slog.Logger) *CachedSpeaker {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSpeaker{synth: synth, cacheDir: cacheDir, play: play, logger: logger}
}

// Speak starts playing text, interrupting anything already playing.
func (s *CachedSpeaker) Speak(ctx context.Context, text string) error {
	if s.synth == nil || s.play == nil {
		return ErrUnavailable
	}

	s.mu.Lock()
	if s.playing != nil {
		s.playing()
	}
	playCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.playing = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		path, err := s.audioFile(playCtx, text)
		if err != nil {
			s.logger.Warn("speech synthesis failed", "error", err)
			return
		}
		if err := s.play(playCtx, path); err != nil && playCtx.Err() == nil {
			s.logger.Warn("audio playback failed", "path", path, "error", err)
		}
	}()
	return nil
}

// Wait blocks until all playback started so far has finished.
func (s *CachedSpeaker) Wait() { s.wg.Wait() }

// audioFile returns the cached mp3 for text, synthesizing it if needed.
func (s *CachedSpeaker) audioFile(ctx context.Context, text string) (string, error) {
	sum := sha256.Sum256([]byte(s.synth.Voice() + "\x00" + text))
	path := filepath.Join(s.cacheDir, hex.EncodeToString(sum[:12])+".mp3")

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	audio, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("synthesize: %w", err)
	}
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create audio cache: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, audio, 0o644); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("store audio: %w", err)
	}
	return path, nil
}

// CommandPlayer plays files with argv plus the file path.
func CommandPlayer(argv []string) PlayFunc {
	return func(ctx context.Context, path string) error {
		args := append(append([]string(nil), argv[1:]...), path)
		cmd := exec.CommandContext(ctx, argv[0], args...)
		return cmd.Run()
	}
}
