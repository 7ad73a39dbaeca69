package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/aerointel/aerointel-backend/internal/models"
)

type CreateAlertRequest struct {
	Title             string   `json:"title" validate:"required"`
	Message           string   `json:"message" validate:"required"`
	Severity          string   `json:"severity" validate:"required,oneof=Critical High Medium Low"`
	Airline           string   `json:"airline"`
	Country           string   `json:"country"`
	Category          string   `json:"category" validate:"omitempty,oneof=Hiring Expansion Financial Operations Safety Training Firing"`
	RelatedInsightIDs []string `json:"relatedInsightIds"`
	ActionRequired    *bool    `json:"actionRequired"`
}

func (r *CreateAlertRequest) ValidationMessage(errs validator.ValidationErrors) string {
	if hasTag(errs, "required") {
		return "Title, message, and severity are required"
	}
	switch errs[0].Field() {
	case "severity":
		return "Invalid severity level"
	case "category":
		return "Invalid category. Must be one of: Hiring, Expansion, Financial, Operations, Safety, Training, Firing"
	}
	return ""
}

type AlertQuery struct {
	Severity string `query:"severity" validate:"omitempty,oneof=Critical High Medium Low"`
	Airline  string `query:"airline"`
	Category string `query:"category"`
	Limit    int    `query:"limit" validate:"gte=0,lte=500"`
	Offset   int    `query:"offset" validate:"gte=0"`
}

type AlertResponse struct {
	Success bool          `json:"success"`
	Alert   *models.Alert `json:"alert"`
}

type AlertListResponse struct {
	Success    bool           `json:"success"`
	Alerts     []models.Alert `json:"alerts"`
	Pagination Pagination     `json:"pagination"`
}
