package models

import "time"

type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Rank orders severities so that Critical > High > Medium > Low.
// Unknown values rank below Low.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

func (s Severity) Valid() bool { return s.Rank() > 0 }

// Alert is a derived notification. Acknowledged only ever moves false -> true.
type Alert struct {
	ID                string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	Message           string    `gorm:"type:text" json:"message"`
	Severity          Severity  `gorm:"size:20;index" json:"severity"`
	Airline           string    `gorm:"size:255;index" json:"airline"`
	Country           string    `gorm:"size:100" json:"country"`
	Category          string    `gorm:"size:50;index" json:"category"`
	Timestamp         time.Time `gorm:"not null;index" json:"timestamp"`
	RelatedInsightIDs []string  `gorm:"type:jsonb;serializer:json" json:"relatedInsightIds"`
	ActionRequired    bool      `json:"actionRequired"`
	Acknowledged      bool      `json:"acknowledged"`
}
