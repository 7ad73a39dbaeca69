package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aerointel/aerointel-backend/internal/models"
)

const (
	maxListItems      = 5
	minSummaryLength  = 20
	defaultConfidence = 0.8
	defaultItemConf   = 0.7
	defaultProb       = 50
)

var (
	strengths = []string{"Strong", "Moderate", "Weak"}
	trends    = []string{"up", "down", "stable"}
	levels    = []string{"High", "Medium", "Low"}
)

// Context is what the caller knows about a note besides its text.
type Context struct {
	Airline    string `json:"airline,omitempty"`
	Country    string `json:"country,omitempty"`
	RecordedBy string `json:"recordedBy,omitempty"`
}

type MarketSignal struct {
	Signal     string  `json:"signal"`
	Strength   string  `json:"strength"`
	Trend      string  `json:"trend"`
	Confidence float64 `json:"confidence"`
}

type AirlineSpecification struct {
	Airline           string   `json:"airline"`
	Relevance         string   `json:"relevance"`
	Signals           []string `json:"signals"`
	CompetitiveImpact string   `json:"competitiveImpact"`
}

type Prediction struct {
	Event       string  `json:"event"`
	Probability int     `json:"probability"`
	Confidence  float64 `json:"confidence"`
}

// Result is a fully normalized analysis, safe to persist and return.
type Result struct {
	Summary                     string                 `json:"summary"`
	Keywords                    []string               `json:"keywords"`
	Themes                      []string               `json:"themes"`
	Sentiment                   Sentiment              `json:"sentiment"`
	MarketSignals               []MarketSignal         `json:"marketSignals"`
	AirlineSpecifications       []AirlineSpecification `json:"airlineSpecifications"`
	PredictiveProbabilities     []Prediction           `json:"predictiveProbabilities"`
	ConfidenceScore             float64                `json:"confidenceScore"`
	Timestamp                   time.Time              `json:"timestamp"`
	ModelUsed                   string                 `json:"modelUsed"`
	OriginalTranscriptionLength int                    `json:"originalTranscriptionLength"`
}

// PrimaryTheme is the theme stored on the insight.
func (r *Result) PrimaryTheme() string {
	if len(r.Themes) == 0 {
		return ThemeOperations
	}
	return r.Themes[0]
}

// Map renders the result as a generic JSON object for storage.
func (r *Result) Map() (map[string]any, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Normalizer turns raw model output into a Result.
type Normalizer struct {
	Keywords *KeywordValidator
	Now      func() time.Time
}

func NewNormalizer(kv *KeywordValidator) *Normalizer {
	return &Normalizer{Keywords: kv, Now: time.Now}
}

func (n *Normalizer) Normalize(raw map[string]any, transcript string, ctx Context, model string) *Result {
	if raw == nil {
		raw = map[string]any{}
	}

	r := &Result{
		Themes:                      NormalizeThemes(asStrings(raw["themes"])),
		Sentiment:                   NormalizeSentiment(asMap(raw["sentiment"])),
		Keywords:                    n.Keywords.Validate(asStrings(raw["keywords"]), transcript),
		ConfidenceScore:             confidence(raw["confidenceScore"], defaultConfidence),
		MarketSignals:               marketSignals(raw["marketSignals"]),
		AirlineSpecifications:       airlineSpecifications(raw["airlineSpecifications"], ctx.Airline),
		PredictiveProbabilities:     predictions(raw["predictiveProbabilities"]),
		Timestamp:                   n.Now().UTC(),
		ModelUsed:                   model,
		OriginalTranscriptionLength: len([]rune(transcript)),
	}

	r.Summary = strings.TrimSpace(asString(raw["summary"]))
	if len([]rune(r.Summary)) < minSummaryLength {
		subject := ctx.Airline
		if subject == "" {
			subject = "aviation"
		}
		r.Summary = fmt.Sprintf("Analysis of %s intelligence indicates %s activity with %s sentiment.",
			subject, r.PrimaryTheme(), strings.ToLower(string(r.Sentiment.Overall)))
	}
	if r.Sentiment.Overall == "" {
		r.Sentiment.Overall = models.SentimentNeutral
	}
	return r
}

func confidence(v any, fallback float64) float64 {
	f, ok := toFloat(v)
	if !ok || f == 0 {
		return fallback
	}
	return round2(clamp(f, 0.5, 0.99))
}

func marketSignals(v any) []MarketSignal {
	out := []MarketSignal{}
	for _, item := range asSlice(v) {
		if len(out) == maxListItems {
			break
		}
		m := asMap(item)
		if m == nil {
			continue
		}
		signal := strings.TrimSpace(asString(m["signal"]))
		if signal == "" {
			signal = "Market activity detected"
		}
		out = append(out, MarketSignal{
			Signal:     signal,
			Strength:   oneOf(m["strength"], strengths, "Moderate"),
			Trend:      oneOf(m["trend"], trends, "stable"),
			Confidence: confidence(m["confidence"], defaultItemConf),
		})
	}
	return out
}

func airlineSpecifications(v any, contextAirline string) []AirlineSpecification {
	out := []AirlineSpecification{}
	for _, item := range asSlice(v) {
		if len(out) == maxListItems {
			break
		}
		m := asMap(item)
		if m == nil {
			continue
		}
		airline := strings.TrimSpace(asString(m["airline"]))
		if airline == "" {
			airline = contextAirline
		}
		if airline == "" {
			airline = "Unknown"
		}
		signals := asStrings(m["signals"])
		if len(signals) > maxListItems {
			signals = signals[:maxListItems]
		}
		if signals == nil {
			signals = []string{}
		}
		out = append(out, AirlineSpecification{
			Airline:           airline,
			Relevance:         oneOf(m["relevance"], levels, "Medium"),
			Signals:           signals,
			CompetitiveImpact: oneOf(m["competitiveImpact"], levels, "Medium"),
		})
	}
	return out
}

func predictions(v any) []Prediction {
	out := []Prediction{}
	for _, item := range asSlice(v) {
		if len(out) == maxListItems {
			break
		}
		m := asMap(item)
		if m == nil {
			continue
		}
		event := strings.TrimSpace(asString(m["event"]))
		if event == "" {
			event = "Predicted market movement"
		}
		prob, ok := toInt(m["probability"])
		if !ok || prob == 0 {
			prob = defaultProb
		}
		out = append(out, Prediction{
			Event:       event,
			Probability: min(max(prob, 0), 100),
			Confidence:  confidence(m["confidence"], defaultItemConf),
		})
	}
	return out
}
