package catalog

var themeOrder = []string{"Hiring", "Expansion", "Financial", "Operations", "Safety", "Training", "Firing"}

func defaultFile() File {
	return File{
		Airlines: []Airline{
			{Name: "Indigo", Country: "India", Aliases: []string{"6e", "indigo airlines", "indigo air"}},
			{Name: "Air India", Country: "India", Aliases: []string{"air india express", "tata airlines"}},
			{Name: "SpiceJet", Country: "India", Aliases: []string{"spice jet"}},
			{Name: "Vistara", Country: "India", Aliases: []string{"tata sia"}},
			{Name: "Go First", Country: "India", Aliases: []string{"g8", "goair", "go air"}},
			{Name: "Akasa Air", Country: "India", Aliases: []string{"akasa", "qp"}},
			{Name: "Alliance Air", Country: "India", Aliases: []string{"9i"}},
			{Name: "AirAsia India", Country: "India", Aliases: []string{"i5", "airasia", "air asia india"}},
			{Name: "Jet Airways", Country: "India", Aliases: []string{"9w"}},
			{Name: "Kingfisher", Country: "India", Aliases: []string{"kingfisher airlines"}},
			{Name: "Emirates", Country: "United Arab Emirates", Aliases: []string{"emirates airlines"}},
			{Name: "Etihad", Country: "United Arab Emirates", Aliases: []string{"etihad airways"}},
			{Name: "Qatar Airways", Country: "Qatar", Aliases: []string{"qatar air"}},
			{Name: "Singapore Airlines", Country: "Singapore", Aliases: []string{"sia", "singapore air"}},
			{Name: "Lufthansa", Country: "Germany", Aliases: []string{"lufthansa airlines"}},
			{Name: "British Airways", Country: "United Kingdom", Aliases: []string{"british air"}},
			{Name: "Virgin Atlantic", Country: "United Kingdom"},
			{Name: "easyJet", Country: "United Kingdom"},
			{Name: "Air France", Country: "France"},
			{Name: "KLM", Country: "Netherlands", Aliases: []string{"klm royal dutch"}},
			{Name: "Turkish Airlines", Country: "Turkey"},
			{Name: "Ryanair", Country: "Ireland"},
			{Name: "American Airlines", Country: "United States"},
			{Name: "Delta", Country: "United States", Aliases: []string{"delta air lines"}},
			{Name: "United Airlines", Country: "United States"},
			{Name: "Southwest", Country: "United States", Aliases: []string{"southwest airlines"}},
			{Name: "Thai Airways", Country: "Thailand"},
			{Name: "Cathay Pacific", Country: "Hong Kong"},
			{Name: "Qantas", Country: "Australia"},
		},
		ThemeTerms: map[string][]string{
			"Hiring":     {"hiring", "recruit", "recruiting", "recruitment", "workforce", "staff", "employees", "talent", "jobs", "positions", "vacancies", "onboarding", "headcount"},
			"Expansion":  {"expansion", "fleet", "routes", "aircraft", "planes", "growth", "new routes", "destinations", "orders", "delivery", "network", "capacity"},
			"Financial":  {"revenue", "profit", "loss", "costs", "funding", "investment", "earnings", "financial", "budget", "expenses", "margins", "debt", "cash flow"},
			"Operations": {"operations", "operational", "delays", "efficiency", "scheduling", "maintenance", "utilization", "on-time", "disruption", "turnaround", "ground handling"},
			"Safety":     {"safety", "incident", "accident", "compliance", "audit", "dgca", "faa", "regulations", "protocol", "inspection", "certification"},
			"Training":   {"training", "simulator", "pilots", "instructors", "crew", "certification", "type rating", "license", "academy", "cadet", "pipeline"},
			"Firing":     {"firing", "layoff", "layoffs", "laid off", "termination", "terminated", "downsizing", "redundancy", "redundancies", "phased out", "phasing out", "let go", "workforce reduction", "job cuts", "furlough", "furloughed", "severance", "restructuring", "cutbacks", "retrenchment"},
		},
		AviationTerms: []string{
			"pilots", "crew", "cabin crew", "flight attendants", "captains", "first officers",
			"simulator", "simulators", "type rating", "training pipeline", "training pipelines",
			"fleet utilization", "load factor", "passenger", "passengers",
			"back office", "operational costs", "cost cutting", "layoffs", "phased out",
			"aircraft types", "narrowbody", "widebody", "turboprop",
			"boeing", "airbus", "a320", "a321", "737", "787", "777",
			"mro", "hub", "spoke", "slots", "codeshare",
			"fired", "workforce reduction", "job cuts", "downsizing", "restructuring",
			"furlough", "furloughed", "redundancies", "retrenchment", "severance",
		},
		Phrases: []string{
			"training pipelines", "training pipeline", "simulator demand", "operational costs",
			"fleet utilization", "back office", "aircraft types", "new aircraft",
			"pilot shortage", "crew shortage", "hiring freeze", "cost cutting",
			"route expansion", "fleet expansion", "market share", "load factor",
			"on time performance", "fuel costs", "labor costs",
		},
		StopWords: []string{
			"this", "that", "with", "from", "have", "will", "been", "were", "they", "their",
			"about", "which", "would", "there", "could", "other", "some", "being", "these",
			"those", "while", "trying", "directly", "visually", "visible", "externally",
			"officially", "reality", "balanced", "actively", "because", "stretched",
			"sharply", "coming", "same", "time", "quietly", "decisions", "tied", "keeping",
			"under", "control", "improve", "none", "internal",
		},
	}
}
