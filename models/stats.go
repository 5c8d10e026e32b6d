package models

// StatusBreakdown carries the per-bucket complaint counts for the dashboard
type StatusBreakdown struct {
	Submitted  int64 `json:"submitted"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

// Total sums the four buckets
func (b StatusBreakdown) Total() int64 {
	return b.Submitted + b.InProgress + b.Resolved + b.Closed
}

// DashboardStats is the aggregate payload behind the admin statistics API
type DashboardStats struct {
	TotalComplaints   int64           `json:"total_complaints"`
	ThisMonth         int64           `json:"this_month"`
	ThisWeek          int64           `json:"this_week"`
	ByStatus          StatusBreakdown `json:"by_status"`
	UrgentRatio       string          `json:"urgent_ratio"`
	UrgentCount       int64           `json:"urgent_count"`
	NormalCount       int64           `json:"normal_count"`
	AvgResolutionDays float64         `json:"avg_resolution_days"`
}

// StatsResponse is the envelope served to the admin dashboard
type StatsResponse struct {
	Status      string         `json:"status"`
	Data        DashboardStats `json:"data"`
	GeneratedAt string         `json:"generated_at"`
	ServerTime  int64          `json:"server_time"`
}
