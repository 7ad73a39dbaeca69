package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/aerointel/aerointel-backend/internal/models"
)

type CreateInsightRequest struct {
	Transcription string         `json:"transcription" validate:"required"`
	Airline       string         `json:"airline" validate:"required"`
	Country       string         `json:"country"`
	Theme         string         `json:"theme"`
	Sentiment     string         `json:"sentiment" validate:"omitempty,oneof=Positive Neutral Negative"`
	Score         *float64       `json:"score" validate:"omitempty,min=0,max=100"`
	Summary       string         `json:"summary"`
	Keywords      []string       `json:"keywords"`
	Analysis      map[string]any `json:"analysis"`
}

func (r *CreateInsightRequest) ValidationMessage(errs validator.ValidationErrors) string {
	if hasTag(errs, "required") {
		return "Transcription and airline are required"
	}
	switch errs[0].Field() {
	case "sentiment":
		return "Sentiment must be one of: Positive, Neutral, Negative"
	case "score":
		return "Score must be between 0 and 100"
	}
	return ""
}

// InsightQuery is bound from the list endpoint's query string.
type InsightQuery struct {
	Airline   string `query:"airline"`
	Theme     string `query:"theme"`
	Sentiment string `query:"sentiment" validate:"omitempty,oneof=Positive Neutral Negative"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	UserID    string `query:"userId"`
	Limit     int    `query:"limit" validate:"gte=0,lte=500"`
	Offset    int    `query:"offset" validate:"gte=0"`
}

type InsightResponse struct {
	Success bool            `json:"success"`
	Insight *models.Insight `json:"insight"`
}

type InsightListResponse struct {
	Success    bool             `json:"success"`
	Insights   []models.Insight `json:"insights"`
	Pagination Pagination       `json:"pagination"`
}
