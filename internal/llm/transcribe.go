package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"mime/multipart"
	"net/textproto"
	"strings"
)

const bytesPerSecondEstimate = 16 * 1024

const aviationPrompt = `Aviation industry terminology:
Airlines: Indigo, Air India, SpiceJet, Vistara, GoAir, AirAsia, Emirates, Lufthansa, British Airways, Singapore Airlines, Qatar Airways, Etihad Airways, American Airlines, Delta Airlines, United Airlines, Southwest Airlines.
Aircraft: Boeing 737, 747, 777, 787 Dreamliner, Airbus A320, A321, A330, A350, A380, ATR 72, Embraer E190.
Terms: fleet expansion, pilot hiring, crew training, fuel costs, load factor, revenue passenger kilometers, RPK, ASK, available seat kilometers, codeshare, wet lease, dry lease, MRO, maintenance repair overhaul, DGCA, FAA, EASA, CAA, slots, hub, spoke, LCC, FSC, narrowbody, widebody, turboprop.
Actions: hiring pilots, laying off staff, expanding fleet, adding routes, ordering aircraft, training crew, reporting profits, reporting losses, safety incidents, operational delays.`

type AudioInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Transcription struct {
	Text         string
	Language     string
	Duration     float64
	Confidence   float64
	SegmentCount int
}

type verboseTranscription struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		End        float64  `json:"end"`
		AvgLogprob *float64 `json:"avg_logprob"`
	} `json:"segments"`
}

// Transcribe uploads audio for speech-to-text with an aviation vocabulary hint.
func (c *Client) Transcribe(ctx context.Context, audio AudioInput) (*Transcription, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	filename := audio.Filename
	if filename == "" {
		filename = "recording.webm"
	}
	contentType := audio.ContentType
	if contentType == "" {
		contentType = "audio/webm"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, strings.ReplaceAll(filename, `"`, "")))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(audio.Data); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	fields := [][2]string{
		{"model", c.transcriptionModel},
		{"language", "en"},
		{"response_format", "verbose_json"},
		{"temperature", "0"},
		{"prompt", aviationPrompt},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("failed to build upload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	raw, err := c.do(ctx, "/v1/audio/transcriptions", w.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var vt verboseTranscription
	if err := json.Unmarshal(raw, &vt); err != nil {
		return nil, fmt.Errorf("failed to decode transcription: %w", err)
	}
	return summarize(vt, len(audio.Data)), nil
}

func summarize(vt verboseTranscription, size int) *Transcription {
	t := &Transcription{
		Text:         vt.Text,
		Language:     vt.Language,
		Confidence:   0.95,
		SegmentCount: len(vt.Segments),
	}
	if t.Language == "" {
		t.Language = "en"
	}

	if n := len(vt.Segments); n > 0 {
		t.Duration = vt.Segments[n-1].End

		total := 0.0
		for _, s := range vt.Segments {
			if s.AvgLogprob != nil && *s.AvgLogprob != 0 {
				total += math.Exp(*s.AvgLogprob)
			} else {
				total += 0.9
			}
		}
		t.Confidence = math.Min(0.99, math.Max(0.5, total/float64(n)))
	} else {
		t.Duration = math.Max(1, float64(size)/bytesPerSecondEstimate)
	}

	t.Duration = math.Round(t.Duration*10) / 10
	t.Confidence = math.Round(t.Confidence*100) / 100
	return t
}
