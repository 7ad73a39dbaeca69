package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/llm"
)

var audioFormats = []string{"webm", "mp3", "mpeg", "wav", "m4a", "ogg"}

// Transcriber is the slice of the LLM client transcription needs.
type Transcriber interface {
	Configured() bool
	Transcribe(ctx context.Context, audio llm.AudioInput) (*llm.Transcription, error)
}

type TranscriptionService struct {
	llm      Transcriber
	maxBytes int64
}

func NewTranscriptionService(client Transcriber, maxAudioMB int) *TranscriptionService {
	return &TranscriptionService{llm: client, maxBytes: int64(maxAudioMB) << 20}
}

// MaxBytes is the largest accepted upload.
func (s *TranscriptionService) MaxBytes() int64 { return s.maxBytes }

func (s *TranscriptionService) Transcribe(ctx context.Context, audio llm.AudioInput) (*dto.TranscribeResponse, error) {
	if !s.llm.Configured() {
		return nil, apperr.Unavailable("Transcription service not configured")
	}
	if len(audio.Data) == 0 {
		return nil, apperr.Validation("Audio file is required")
	}
	if !SupportedAudio(audio.ContentType) {
		return nil, apperr.Validation("Invalid audio format. Supported: webm, mp3, wav, m4a, ogg")
	}
	if s.maxBytes > 0 && int64(len(audio.Data)) > s.maxBytes {
		return nil, apperr.Validationf("Audio file too large. Maximum size is %d MB", s.maxBytes>>20)
	}

	t, err := s.llm.Transcribe(ctx, audio)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, apperr.FromProvider(fmt.Errorf("transcribe: %w", err), "Transcription failed")
	}

	return &dto.TranscribeResponse{
		Success:       true,
		Transcription: t.Text,
		Metadata: dto.TranscriptionMetadata{
			Duration:     t.Duration,
			Language:     t.Language,
			Confidence:   t.Confidence,
			SegmentCount: t.SegmentCount,
		},
	}, nil
}

// SupportedAudio reports whether a content type names an accepted format.
func SupportedAudio(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, f := range audioFormats {
		if strings.Contains(ct, f) {
			return true
		}
	}
	return false
}
