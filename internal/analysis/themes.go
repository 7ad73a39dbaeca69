package analysis

import "strings"

const (
	ThemeHiring     = "Hiring"
	ThemeExpansion  = "Expansion"
	ThemeFinancial  = "Financial"
	ThemeOperations = "Operations"
	ThemeSafety     = "Safety"
	ThemeTraining   = "Training"
	ThemeFiring     = "Firing"
)

// Themes is the closed set every insight theme is drawn from.
var Themes = []string{ThemeHiring, ThemeExpansion, ThemeFinancial, ThemeOperations, ThemeSafety, ThemeTraining, ThemeFiring}

type themeRule struct {
	theme string
	terms []string
}

// Order matters: a label is mapped by the first rule with a matching fragment.
var synonymRules = []themeRule{
	{ThemeHiring, []string{"hire", "recruit", "workforce addition"}},
	{ThemeFiring, []string{"firing", "layoff", "terminat", "downsiz", "phased out", "phasing out", "redundanc", "furlough", "job cut", "retrench", "workforce reduction"}},
	{ThemeExpansion, []string{"expand", "fleet", "route", "growth"}},
	{ThemeFinancial, []string{"financ", "profit", "loss", "revenue"}},
	{ThemeOperations, []string{"operat", "delay", "maintenance"}},
	{ThemeSafety, []string{"safe", "incident", "compliance"}},
	{ThemeTraining, []string{"train", "simulat", "certif"}},
}

var categoryRules = []themeRule{
	{ThemeHiring, []string{"hiring", "recruit"}},
	{ThemeFiring, []string{"firing", "layoff", "terminat", "downsiz", "phased out", "furlough", "redundanc"}},
	{ThemeExpansion, []string{"expansion", "fleet", "route"}},
	{ThemeFinancial, []string{"financ", "revenue", "profit"}},
	{ThemeOperations, []string{"operation", "delay", "maintenance"}},
	{ThemeSafety, []string{"safety", "incident", "compliance"}},
	{ThemeTraining, []string{"training", "simulator", "certification"}},
}

func (r themeRule) matches(lower string) bool {
	for _, t := range r.terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// IsTheme reports whether s is one of Themes, ignoring case.
func IsTheme(s string) bool {
	_, ok := canonicalTheme(s)
	return ok
}

func canonicalTheme(s string) (string, bool) {
	for _, t := range Themes {
		if strings.EqualFold(t, s) {
			return t, true
		}
	}
	return "", false
}

// NormalizeThemes maps free-form labels onto Themes. The result keeps first
// occurrence order, has no duplicates and is never empty.
func NormalizeThemes(raw []string) []string {
	seen := make(map[string]bool, len(Themes))
	var out []string
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	for _, label := range raw {
		if t, ok := canonicalTheme(strings.TrimSpace(label)); ok {
			add(t)
			continue
		}
		lower := strings.ToLower(label)
		for _, r := range synonymRules {
			if r.matches(lower) {
				add(r.theme)
				break
			}
		}
	}

	if len(out) == 0 {
		return []string{ThemeOperations}
	}
	return out
}

// CategoryForTheme picks the alert category for an insight theme.
func CategoryForTheme(theme string) string {
	lower := strings.ToLower(theme)
	for _, r := range categoryRules {
		if r.matches(lower) {
			return r.theme
		}
	}
	return ThemeOperations
}
