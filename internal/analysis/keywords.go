package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/aerointel/aerointel-backend/internal/catalog"
)

const (
	maxKeywords      = 12
	minKeywords      = 5
	minFallbackWord  = 5
	minKeywordLength = 2
	minPartLength    = 3
)

var (
	wordPattern = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

	fallbackFragments = []string{"pilot", "train", "hire", "recruit", "fleet", "cost", "aircraft", "simul", "operat"}
)

// KeywordValidator grounds keywords in the transcript they came from.
type KeywordValidator struct {
	catalog *catalog.Catalog
}

func NewKeywordValidator(c *catalog.Catalog) *KeywordValidator {
	if c == nil {
		c = catalog.Default()
	}
	return &KeywordValidator{catalog: c}
}

// Validate merges vocabulary hits from the transcript with the suggested
// keywords that the transcript supports, then ranks and truncates them.
func (v *KeywordValidator) Validate(suggested []string, transcript string) []string {
	lower := strings.ToLower(transcript)

	var candidates []string
	candidates = append(candidates, v.catalog.AirlinesIn(transcript)...)
	for _, term := range v.catalog.TermsInOrder() {
		if strings.Contains(lower, strings.ToLower(term)) {
			candidates = append(candidates, term)
		}
	}

	for _, kw := range suggested {
		kw = strings.TrimSpace(kw)
		if len([]rune(kw)) < minKeywordLength {
			continue
		}
		if grounded(strings.ToLower(kw), lower) {
			candidates = append(candidates, kw)
		}
	}

	keywords := dedupeFold(candidates)
	if len(keywords) < minKeywords {
		for _, w := range wordPattern.FindAllString(transcript, -1) {
			if len(w) < minFallbackWord || v.catalog.IsStopWord(w) {
				continue
			}
			lw := strings.ToLower(w)
			for _, frag := range fallbackFragments {
				if strings.Contains(lw, frag) {
					candidates = append(candidates, lw)
					break
				}
			}
		}
		keywords = dedupeFold(candidates)
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		a, b := keywords[i], keywords[j]
		if ai, bi := v.catalog.IsAirlineTerm(a), v.catalog.IsAirlineTerm(b); ai != bi {
			return ai
		}
		if ap, bp := strings.Contains(a, " "), strings.Contains(b, " "); ap != bp {
			return ap
		}
		return len(a) > len(b)
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

func grounded(keyword, transcript string) bool {
	if strings.Contains(transcript, keyword) {
		return true
	}
	for _, part := range strings.Fields(keyword) {
		if len(part) >= minPartLength && strings.Contains(transcript, part) {
			return true
		}
	}
	return false
}

func dedupeFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
