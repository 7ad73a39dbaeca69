package catalog

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Airline is one carrier the platform recognizes in transcripts.
type Airline struct {
	Name    string   `yaml:"name"`
	Country string   `yaml:"country"`
	Aliases []string `yaml:"aliases"`
}

// File is the on-disk YAML shape accepted by LoadFromFile.
type File struct {
	Airlines      []Airline           `yaml:"airlines"`
	ThemeTerms    map[string][]string `yaml:"themeTerms"`
	AviationTerms []string            `yaml:"aviationTerms"`
	Phrases       []string            `yaml:"phrases"`
	StopWords     []string            `yaml:"stopWords"`
}

// Catalog is the domain vocabulary used by keyword validation and airline
// detection. It is built once at startup and read concurrently afterwards.
type Catalog struct {
	airlines      []Airline
	matchers      [][]aliasMatcher
	themeTerms    map[string][]string
	themeOrder    []string
	aviationTerms []string
	phrases       []string
	stopWords     map[string]struct{}
}

type aliasMatcher struct {
	alias string
	re    *regexp.Regexp // only for short codes
}

func (m aliasMatcher) in(lowerText string) bool {
	if m.re != nil {
		return m.re.MatchString(lowerText)
	}
	return strings.Contains(lowerText, m.alias)
}

func (m aliasMatcher) index(lowerText string) int {
	if m.re != nil {
		loc := m.re.FindStringIndex(lowerText)
		if loc == nil {
			return -1
		}
		return loc[0]
	}
	return strings.Index(lowerText, m.alias)
}

func (m aliasMatcher) count(lowerText string) int {
	if m.re != nil {
		return len(m.re.FindAllStringIndex(lowerText, -1))
	}
	return strings.Count(lowerText, m.alias)
}

func newCatalog(f File) *Catalog {
	c := &Catalog{
		themeTerms: make(map[string][]string),
		stopWords:  make(map[string]struct{}),
	}
	for _, a := range f.Airlines {
		c.Register(a)
	}
	for theme, terms := range f.ThemeTerms {
		c.themeTerms[theme] = appendUnique(c.themeTerms[theme], terms...)
	}
	c.themeOrder = sortedThemeOrder(c.themeTerms)
	c.aviationTerms = appendUnique(nil, f.AviationTerms...)
	c.phrases = appendUnique(nil, f.Phrases...)
	for _, w := range f.StopWords {
		c.stopWords[strings.ToLower(w)] = struct{}{}
	}
	return c
}

// Default returns the built-in vocabulary.
func Default() *Catalog {
	return newCatalog(defaultFile())
}

// LoadFromFile merges a YAML vocabulary file over the defaults. Airlines with
// a name already known replace the built-in entry; term lists are extended.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var extra File
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	base := defaultFile()
	for _, a := range extra.Airlines {
		replaced := false
		for i := range base.Airlines {
			if strings.EqualFold(base.Airlines[i].Name, a.Name) {
				base.Airlines[i] = a
				replaced = true
				break
			}
		}
		if !replaced {
			base.Airlines = append(base.Airlines, a)
		}
	}
	for theme, terms := range extra.ThemeTerms {
		base.ThemeTerms[theme] = append(base.ThemeTerms[theme], terms...)
	}
	base.AviationTerms = append(base.AviationTerms, extra.AviationTerms...)
	base.Phrases = append(base.Phrases, extra.Phrases...)
	base.StopWords = append(base.StopWords, extra.StopWords...)

	return newCatalog(base), nil
}

// Register adds an airline. Its name is always treated as an alias.
func (c *Catalog) Register(a Airline) {
	if strings.TrimSpace(a.Name) == "" {
		return
	}
	aliases := appendUnique([]string{strings.ToLower(a.Name)}, lowerAll(a.Aliases)...)
	a.Aliases = aliases

	matchers := make([]aliasMatcher, 0, len(aliases))
	for _, alias := range aliases {
		m := aliasMatcher{alias: alias}
		if len(alias) <= 3 {
			m.re = regexp.MustCompile(`\b` + regexp.QuoteMeta(alias) + `\b`)
		}
		matchers = append(matchers, m)
	}
	c.airlines = append(c.airlines, a)
	c.matchers = append(c.matchers, matchers)
}

func (c *Catalog) Airlines() []Airline {
	out := make([]Airline, len(c.airlines))
	copy(out, c.airlines)
	return out
}

// Airline looks an airline up by name, case-insensitively.
func (c *Catalog) Airline(name string) (Airline, bool) {
	for _, a := range c.airlines {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Airline{}, false
}

// AirlinesIn returns the canonical names of every airline mentioned in text,
// in catalog order.
func (c *Catalog) AirlinesIn(text string) []string {
	lower := strings.ToLower(text)
	var names []string
	for i, a := range c.airlines {
		for _, m := range c.matchers[i] {
			if m.in(lower) {
				names = append(names, a.Name)
				break
			}
		}
	}
	return names
}

// IsAirlineTerm reports whether s names or contains a known airline.
func (c *Catalog) IsAirlineTerm(s string) bool {
	lower := strings.ToLower(s)
	for i := range c.airlines {
		for _, m := range c.matchers[i] {
			if m.in(lower) {
				return true
			}
		}
	}
	return false
}

// ThemeGroup is a theme with the terms that signal it.
type ThemeGroup struct {
	Theme string
	Terms []string
}

// ThemeTerms returns the theme vocabulary in a stable order.
func (c *Catalog) ThemeTerms() []ThemeGroup {
	out := make([]ThemeGroup, 0, len(c.themeOrder))
	for _, theme := range c.themeOrder {
		out = append(out, ThemeGroup{Theme: theme, Terms: c.themeTerms[theme]})
	}
	return out
}

// TermsInOrder flattens theme terms, aviation terms and phrases.
func (c *Catalog) TermsInOrder() []string {
	var out []string
	for _, theme := range c.themeOrder {
		out = append(out, c.themeTerms[theme]...)
	}
	out = append(out, c.aviationTerms...)
	out = append(out, c.phrases...)
	return out
}

// IsDomainTerm reports whether s is a configured theme term, aviation term or phrase.
func (c *Catalog) IsDomainTerm(s string) bool {
	lower := strings.ToLower(s)
	for _, t := range c.TermsInOrder() {
		if strings.ToLower(t) == lower {
			return true
		}
	}
	return false
}

func (c *Catalog) IsStopWord(w string) bool {
	_, ok := c.stopWords[strings.ToLower(w)]
	return ok
}

// Detection is an airline found in a transcript with its relevance score.
type Detection struct {
	Airline    Airline
	Matches    []string
	Score      float64
	Relevance  string
	Mentions   int
	FirstIndex int
}

const maxDetections = 5

// DetectAirlines ranks the airlines mentioned in text. The score rewards the
// share of aliases matched, an explicit mention of the canonical name and an
// early first mention. Ties fall back to mention count, then position.
func (c *Catalog) DetectAirlines(text string) []Detection {
	lower := strings.ToLower(text)
	if lower == "" {
		return nil
	}

	var found []Detection
	for i, a := range c.airlines {
		d := Detection{Airline: a, FirstIndex: len(lower)}
		for _, m := range c.matchers[i] {
			pos := m.index(lower)
			if pos < 0 {
				continue
			}
			d.Matches = append(d.Matches, m.alias)
			d.Mentions += m.count(lower)
			if pos < d.FirstIndex {
				d.FirstIndex = pos
			}
		}
		if len(d.Matches) == 0 {
			continue
		}

		d.Score = float64(len(d.Matches)) / float64(len(c.matchers[i]))
		if c.matchers[i][0].in(lower) {
			d.Score += 0.2
		}
		d.Score += (1.0 - float64(d.FirstIndex)/float64(len(lower))) * 0.1

		switch {
		case d.Score > 0.4:
			d.Relevance = "High"
		case d.Score > 0.2:
			d.Relevance = "Medium"
		default:
			d.Relevance = "Low"
		}
		found = append(found, d)
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Score != found[j].Score {
			return found[i].Score > found[j].Score
		}
		if found[i].Mentions != found[j].Mentions {
			return found[i].Mentions > found[j].Mentions
		}
		return found[i].FirstIndex < found[j].FirstIndex
	})
	if len(found) > maxDetections {
		found = found[:maxDetections]
	}
	return found
}

// PrimaryAirline returns the best detection, if any.
func (c *Catalog) PrimaryAirline(text string) (Airline, bool) {
	found := c.DetectAirlines(text)
	if len(found) == 0 {
		return Airline{}, false
	}
	return found[0].Airline, true
}

func sortedThemeOrder(terms map[string][]string) []string {
	order := make([]string, 0, len(terms))
	known := map[string]bool{}
	for _, t := range themeOrder {
		if _, ok := terms[t]; ok {
			order = append(order, t)
			known[t] = true
		}
	}
	var rest []string
	for t := range terms {
		if !known[t] {
			rest = append(rest, t)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func appendUnique(dst []string, items ...string) []string {
	seen := make(map[string]struct{}, len(dst)+len(items))
	for _, s := range dst {
		seen[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		dst = append(dst, s)
	}
	return dst
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
