package models

import (
	"time"

	"gorm.io/datatypes"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// Insight is one analyzed voice note. It is never modified after creation.
type Insight struct {
	ID            string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        string            `gorm:"type:varchar(36);not null;index" json:"userId"`
	UserName      string            `gorm:"size:255" json:"userName"`
	Transcription string            `gorm:"type:text;not null" json:"transcription"`
	Airline       string            `gorm:"size:255;index" json:"airline"`
	Country       string            `gorm:"size:100" json:"country"`
	Theme         string            `gorm:"size:50;index" json:"theme"`
	Sentiment     Sentiment         `gorm:"size:20;index" json:"sentiment"`
	Score         float64           `json:"score"`
	Summary       string            `gorm:"type:text" json:"summary"`
	Keywords      []string          `gorm:"type:jsonb;serializer:json" json:"keywords"`
	Analysis      datatypes.JSONMap `gorm:"type:jsonb" json:"analysis"`
	Timestamp     time.Time         `gorm:"not null;index" json:"timestamp"`
}
