package analysis

import (
	"math"

	"github.com/aerointel/aerointel-backend/internal/models"
)

const (
	positiveThreshold = 0.65
	negativeThreshold = 0.35
)

type Breakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

type Sentiment struct {
	Overall   models.Sentiment `json:"overall"`
	Score     float64          `json:"score"`
	Breakdown Breakdown        `json:"breakdown"`
}

var defaultBreakdown = Breakdown{Positive: 33, Neutral: 34, Negative: 33}

// LabelForScore derives the sentiment label from a score in [0,1].
func LabelForScore(score float64) models.Sentiment {
	switch {
	case score >= positiveThreshold:
		return models.SentimentPositive
	case score <= negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// NormalizeSentiment coerces a model-produced sentiment object. Scores above 1
// are read as percentages; the label always follows the final score.
func NormalizeSentiment(raw map[string]any) Sentiment {
	if raw == nil {
		return Sentiment{Overall: models.SentimentNeutral, Score: 0.5, Breakdown: defaultBreakdown}
	}

	score, ok := toFloat(raw["score"])
	if !ok || math.IsNaN(score) {
		score = 0.5
	}
	if score > 1 {
		score /= 100
	}
	score = round2(clamp(score, 0, 1))

	return Sentiment{
		Overall:   LabelForScore(score),
		Score:     score,
		Breakdown: normalizeBreakdown(asMap(raw["breakdown"])),
	}
}

func normalizeBreakdown(raw map[string]any) Breakdown {
	part := func(key string, fallback int) int {
		v, ok := toInt(raw[key])
		if !ok {
			return fallback
		}
		return max(v, 0)
	}
	b := Breakdown{
		Positive: part("positive", defaultBreakdown.Positive),
		Neutral:  part("neutral", defaultBreakdown.Neutral),
		Negative: part("negative", defaultBreakdown.Negative),
	}

	total := b.Positive + b.Neutral + b.Negative
	if total == 0 {
		return defaultBreakdown
	}
	if total == 100 {
		return b
	}
	pct := func(v int) int { return int(math.Round(float64(v) / float64(total) * 100)) }
	return Breakdown{Positive: pct(b.Positive), Neutral: pct(b.Neutral), Negative: pct(b.Negative)}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }
