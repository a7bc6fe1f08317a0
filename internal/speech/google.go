package speech

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// GoogleSynthesizer uses Google Cloud Text-to-Speech. Credentials come from
// GOOGLE_APPLICATION_CREDENTIALS or the ambient gcloud login.
type GoogleSynthesizer struct {
	client       *texttospeech.Client
	voice        string
	languageCode string
}

// NewGoogleSynthesizer creates a client for the given voice.
func NewGoogleSynthesizer(ctx context.Context, voice, languageCode string) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create text-to-speech client: %w", err)
	}
	return &GoogleSynthesizer{client: client, voice: voice, languageCode: languageCode}, nil
}

func (g *GoogleSynthesizer) Voice() string { return g.voice }

// Synthesize returns mp3 audio of text.
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := g.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.languageCode,
			Name:         g.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("SynthesizeSpeech: %w", err)
	}
	return resp.AudioContent, nil
}

// Close releases the client connection.
func (g *GoogleSynthesizer) Close() error { return g.client.Close() }

// NewSpeaker builds the Speaker described by cfg. When synthesis or
// playback cannot be set up it returns Unavailable; the returned closer is
// always non-nil.
func NewSpeaker(ctx context.Context, cfg Config, logger *slog.Logger) (Speaker, io.Closer) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TTS != "google" {
		return Unavailable{}, nopCloser{}
	}
	player := resolvePlayer(cfg.Player)
	if player == nil {
		logger.Info("no audio player found; text-to-speech disabled")
		return Unavailable{}, nopCloser{}
	}
	synth, err := NewGoogleSynthesizer(ctx, cfg.Voice, cfg.LanguageCode)
	if err != nil {
		logger.Info("text-to-speech disabled", "error", err)
		return Unavailable{}, nopCloser{}
	}
	return NewCachedSpeaker(synth, cfg.CacheDir, CommandPlayer(player), logger), synth
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
