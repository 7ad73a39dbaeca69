package analysis

import (
	"strings"

	"github.com/aerointel/aerointel-backend/internal/llm"
)

const notSpecified = "Not specified"

const systemPrompt = `You are an expert aviation market intelligence analyst with 20+ years of experience in the aviation industry. Your role is to analyze voice transcriptions from industry sources and extract actionable market intelligence.

You MUST be precise, accurate, and consistent in your analysis. Focus on:
1. Extracting EXACT keywords that appear in or are directly implied by the transcription
2. Classifying themes STRICTLY from the allowed list
3. Providing realistic sentiment scores based on the actual content
4. Making reasonable market signal predictions based on evidence in the text

CRITICAL: Your analysis must be grounded in the transcription text. Do not hallucinate or make up information not present in the source.`

const fewShotExamples = `
=== EXAMPLE 1 ===
Transcription: "Indigo Airlines announced they will be hiring 500 new pilots over the next quarter to support their fleet expansion plans. The airline expects to add 30 new aircraft by year end."

Analysis:
{
  "summary": "Indigo Airlines is undertaking major workforce expansion with plans to hire 500 pilots to support their fleet growth of 30 new aircraft by year end, indicating strong market confidence and aggressive growth strategy.",
  "keywords": ["hiring", "pilots", "500", "fleet expansion", "Indigo", "30 aircraft", "workforce"],
  "themes": ["Hiring", "Expansion"],
  "sentiment": {
    "overall": "Positive",
    "score": 0.88,
    "breakdown": { "positive": 85, "neutral": 15, "negative": 0 }
  },
  "marketSignals": [
    { "signal": "Major pilot hiring indicates strong demand forecasting", "strength": "Strong", "trend": "up", "confidence": 0.92 },
    { "signal": "Fleet expansion of 30 aircraft signals aggressive growth", "strength": "Strong", "trend": "up", "confidence": 0.90 }
  ],
  "airlineSpecifications": [
    { "airline": "Indigo", "relevance": "High", "signals": ["Pilot hiring", "Fleet growth"], "competitiveImpact": "High" }
  ],
  "predictiveProbabilities": [
    { "event": "Indigo will increase market share in Indian aviation", "probability": 78, "confidence": 0.85 },
    { "event": "Increased competition for pilot recruitment in India", "probability": 72, "confidence": 0.80 }
  ],
  "confidenceScore": 0.91
}

=== EXAMPLE 2 ===
Transcription: "SpiceJet reported a quarterly loss of 450 crores due to rising fuel costs and operational inefficiencies. The airline is considering laying off 15% of its ground staff."

Analysis:
{
  "summary": "SpiceJet faces significant financial challenges with a 450 crore quarterly loss attributed to fuel costs and operational issues, leading to potential 15% ground staff reduction indicating severe cost-cutting measures.",
  "keywords": ["SpiceJet", "quarterly loss", "450 crores", "fuel costs", "laying off", "15%", "ground staff", "operational inefficiencies"],
  "themes": ["Financial", "Firing", "Operations"],
  "sentiment": {
    "overall": "Negative",
    "score": 0.22,
    "breakdown": { "positive": 5, "neutral": 20, "negative": 75 }
  },
  "marketSignals": [
    { "signal": "Financial distress signals potential restructuring", "strength": "Strong", "trend": "down", "confidence": 0.88 },
    { "signal": "Staff layoffs indicate workforce reduction", "strength": "Strong", "trend": "down", "confidence": 0.85 },
    { "signal": "Operational inefficiencies require urgent attention", "strength": "Moderate", "trend": "down", "confidence": 0.82 }
  ],
  "airlineSpecifications": [
    { "airline": "SpiceJet", "relevance": "High", "signals": ["Financial loss", "Layoffs", "Operational issues"], "competitiveImpact": "Medium" }
  ],
  "predictiveProbabilities": [
    { "event": "SpiceJet will implement further cost reduction measures", "probability": 85, "confidence": 0.88 },
    { "event": "Potential route rationalization in coming months", "probability": 65, "confidence": 0.72 }
  ],
  "confidenceScore": 0.86
}

=== EXAMPLE 3 ===
Transcription: "The DGCA has mandated additional safety training for all Boeing 737 MAX pilots following recent incidents. Airlines must complete compliance within 90 days."

Analysis:
{
  "summary": "DGCA mandates enhanced safety training for Boeing 737 MAX pilots with 90-day compliance deadline, reflecting heightened regulatory focus on aircraft safety following recent incidents.",
  "keywords": ["DGCA", "safety training", "Boeing 737 MAX", "pilots", "compliance", "90 days", "incidents"],
  "themes": ["Safety", "Training"],
  "sentiment": {
    "overall": "Neutral",
    "score": 0.50,
    "breakdown": { "positive": 25, "neutral": 55, "negative": 20 }
  },
  "marketSignals": [
    { "signal": "Increased regulatory scrutiny on 737 MAX operations", "strength": "Strong", "trend": "stable", "confidence": 0.90 },
    { "signal": "Training capacity demand will increase industry-wide", "strength": "Moderate", "trend": "up", "confidence": 0.78 }
  ],
  "airlineSpecifications": [
    { "airline": "Industry-wide", "relevance": "High", "signals": ["Regulatory compliance", "Safety training"], "competitiveImpact": "Medium" }
  ],
  "predictiveProbabilities": [
    { "event": "Airlines will increase simulator training investments", "probability": 80, "confidence": 0.85 },
    { "event": "Temporary capacity reduction during training compliance", "probability": 55, "confidence": 0.65 }
  ],
  "confidenceScore": 0.84
}

=== EXAMPLE 4 (Complex Multi-Theme) ===
Transcription: "Internal workforce and training reality at Indigo. Officially, we say hiring is balanced, but in reality, we are actively recruiting pilots and instructors because training pipelines are stretched. Simulator demand has gone up sharply with new aircraft types coming in. At the same time, some back office roles are being phased out quietly. These decisions are tied directly to keeping operational costs under control while trying to improve fleet utilization."

Analysis:
{
  "summary": "Indigo is experiencing complex workforce dynamics with active pilot and instructor recruitment to address stretched training pipelines, while simultaneously phasing out back office roles to control operational costs and improve fleet utilization.",
  "keywords": ["Indigo", "hiring", "recruiting", "pilots", "instructors", "training pipelines", "simulator demand", "back office", "phased out", "operational costs", "fleet utilization"],
  "themes": ["Hiring", "Training", "Firing", "Operations"],
  "sentiment": {
    "overall": "Neutral",
    "score": 0.52,
    "breakdown": { "positive": 40, "neutral": 35, "negative": 25 }
  },
  "marketSignals": [
    { "signal": "Active pilot recruitment indicates capacity growth", "strength": "Strong", "trend": "up", "confidence": 0.88 },
    { "signal": "Training infrastructure under pressure from fleet growth", "strength": "Strong", "trend": "up", "confidence": 0.85 },
    { "signal": "Back office restructuring signals cost optimization", "strength": "Moderate", "trend": "down", "confidence": 0.78 },
    { "signal": "Focus on fleet utilization improvement", "strength": "Moderate", "trend": "up", "confidence": 0.75 }
  ],
  "airlineSpecifications": [
    { "airline": "Indigo", "relevance": "High", "signals": ["Pilot hiring", "Training expansion", "Cost optimization", "Back office reduction"], "competitiveImpact": "High" }
  ],
  "predictiveProbabilities": [
    { "event": "Increased investment in simulator facilities", "probability": 82, "confidence": 0.86 },
    { "event": "More back office automation and role consolidation", "probability": 70, "confidence": 0.75 },
    { "event": "Pilot shortage may persist in short term", "probability": 65, "confidence": 0.72 }
  ],
  "confidenceScore": 0.85
}
`

const acknowledgement = "I understand the analysis format and will follow the examples precisely. I will now analyze your transcription."

const analysisTemplate = `Analyze the following aviation industry transcription and provide structured intelligence.

=== TRANSCRIPTION TO ANALYZE ===
"{transcription}"

=== CONTEXT ===
- Airline mentioned or related: {airline}
- Country/Region: {country}
- Source: {recordedBy}

=== STRICT RULES ===
1. THEMES: Extract ALL applicable themes (2-4 themes typical). Use ONLY these exact themes: {themes}
   - Hiring: Recruitment, workforce additions, new positions, talent acquisition, staffing, recruiting
   - Expansion: Fleet growth, new routes, new destinations, aircraft orders, market entry
   - Financial: Revenue, profits, losses, investments, costs, funding, financial performance
   - Operations: Day-to-day operations, delays, efficiency, scheduling, maintenance, disruptions, fleet utilization
   - Safety: Safety incidents, protocols, audits, regulatory compliance, DGCA/FAA actions
   - Training: Pilot training, crew certification, simulators, skill development programs, training pipelines
   - Firing: Layoffs, terminations, workforce reductions, job cuts, downsizing, phasing out roles, furloughs, restructuring
   
   IMPORTANT: A single transcription often covers MULTIPLE themes. For example:
   - "hiring pilots" + "training programs" = themes: ["Hiring", "Training"]
   - "layoffs" + "cost control" = themes: ["Firing", "Financial", "Operations"]
   - "recruiting" + "phasing out back office" = themes: ["Hiring", "Firing"]

2. KEYWORDS: Extract 8-12 keywords following these PRIORITY RULES:
   a) AIRLINE NAMES: ALWAYS include any airline names mentioned (Indigo, SpiceJet, Air India, Vistara, etc.) - HIGHEST PRIORITY
   b) ROLES/PEOPLE: Include roles mentioned (pilots, instructors, crew, staff, captains)
   c) ACTIVITIES: Include key actions (hiring, recruiting, training, phasing out, firing, layoffs, expanding)
   d) BUSINESS TERMS: Include business concepts (operational costs, fleet utilization, simulator demand)
   e) SPECIFIC PHRASES: Include multi-word phrases that appear in the text (training pipelines, back office, phased out)
   
   Keywords MUST be actual words/phrases from the transcription, not generic descriptions.
   Include BOTH single words AND multi-word phrases for comprehensive coverage.

3. SENTIMENT SCORE: 
   - Positive (0.65-1.0): Growth, expansion, profits, hiring, success
   - Neutral (0.35-0.65): Regulatory updates, routine operations, mixed news
   - Negative (0.0-0.35): Losses, layoffs, firing, safety incidents, operational failures

4. ACCURACY: Only include information that is explicitly stated or can be reasonably inferred from the transcription. Do not fabricate details.

=== REQUIRED JSON OUTPUT ===
{
  "summary": "2-3 sentence executive summary of key insights",
  "keywords": ["keyword1", "keyword2", "keyword3", "multi-word phrase", "keyword5", "keyword6", "keyword7", "keyword8"],
  "themes": ["Theme1", "Theme2", "Theme3"],
  "sentiment": {
    "overall": "Positive" | "Neutral" | "Negative",
    "score": 0.0-1.0,
    "breakdown": { "positive": 0-100, "neutral": 0-100, "negative": 0-100 }
  },
  "marketSignals": [
    { "signal": "Description", "strength": "Strong|Moderate|Weak", "trend": "up|down|stable", "confidence": 0.0-1.0 }
  ],
  "airlineSpecifications": [
    { "airline": "Name", "relevance": "High|Medium|Low", "signals": ["signal1"], "competitiveImpact": "High|Medium|Low" }
  ],
  "predictiveProbabilities": [
    { "event": "Predicted event", "probability": 0-100, "confidence": 0.0-1.0 }
  ],
  "confidenceScore": 0.0-1.0
}

Respond with ONLY valid JSON. No markdown, no explanation, just the JSON object.`

// Messages builds the chat exchange sent to the model: instructions, worked
// examples, an acknowledgement and the note to analyze.
func Messages(transcript string, ctx Context, recordedBy string) []llm.Message {
	if ctx.RecordedBy != "" {
		recordedBy = ctx.RecordedBy
	}
	prompt := strings.NewReplacer(
		"{themes}", strings.Join(Themes, ", "),
		"{transcription}", transcript,
		"{airline}", orDefault(ctx.Airline, notSpecified),
		"{country}", orDefault(ctx.Country, notSpecified),
		"{recordedBy}", orDefault(recordedBy, notSpecified),
	).Replace(analysisTemplate)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: fewShotExamples},
		{Role: llm.RoleAssistant, Content: acknowledgement},
		{Role: llm.RoleUser, Content: prompt},
	}
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
