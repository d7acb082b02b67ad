package domain

// DashboardSummary backs the home-screen metric cards.
type DashboardSummary struct {
	CheckInsSent30d      int     `json:"check_ins_sent_30d"`
	ResponseRate         float64 `json:"response_rate"` // ratio in [0,1]
	ChurnAlertsThisMonth int     `json:"churn_alerts_this_month"`
}

// SentimentBucket is one slice of the sentiment breakdown.
type SentimentBucket struct {
	Count int `json:"count"`
}

// SentimentBreakdown backs the sentiment distribution chart.
type SentimentBreakdown struct {
	Positive SentimentBucket `json:"positive"`
	Neutral  SentimentBucket `json:"neutral"`
	Negative SentimentBucket `json:"negative"`
}

// ROIMetrics backs the estimated-impact cards on the analytics screen.
type ROIMetrics struct {
	TimeSavedHours             float64 `json:"time_saved_hours"`
	ResponseRateImprovementPct float64 `json:"response_rate_improvement_pct"`
	EstimatedSavings           float64 `json:"estimated_savings"`
}
