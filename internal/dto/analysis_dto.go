package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/aerointel/aerointel-backend/internal/analysis"
)

type AnalyzeRequest struct {
	Transcription string           `json:"transcription" validate:"required"`
	Context       analysis.Context `json:"context"`
}

func (r *AnalyzeRequest) ValidationMessage(validator.ValidationErrors) string {
	return "Transcription is required"
}

type AnalyzeResponse struct {
	Success  bool             `json:"success"`
	Analysis *analysis.Result `json:"analysis"`
}

type TranscriptionMetadata struct {
	Duration     float64 `json:"duration"`
	Language     string  `json:"language"`
	Confidence   float64 `json:"confidence"`
	SegmentCount int     `json:"segmentCount"`
}

type TranscribeResponse struct {
	Success       bool                  `json:"success"`
	Transcription string                `json:"transcription"`
	Metadata      TranscriptionMetadata `json:"metadata"`
}
