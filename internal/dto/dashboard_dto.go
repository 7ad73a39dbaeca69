package dto

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

type DashboardStats struct {
	TotalInsights      int                `json:"totalInsights"`
	ActiveAlerts       int                `json:"activeAlerts"`
	AirlinesMonitored  int                `json:"airlinesMonitored"`
	CountriesCovered   int                `json:"countriesCovered"`
	TodayInsights      int                `json:"todayInsights"`
	WeekInsights       int                `json:"weekInsights"`
	SentimentBreakdown SentimentBreakdown `json:"sentimentBreakdown"`
	TopAirlines        []NameCount        `json:"topAirlines"`
	TopThemes          []NameCount        `json:"topThemes"`
	AvgConfidence      float64            `json:"avgConfidence"`
}

type DashboardResponse struct {
	Success bool            `json:"success"`
	Stats   *DashboardStats `json:"stats"`
}
