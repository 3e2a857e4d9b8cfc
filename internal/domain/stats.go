package domain

// ContentStats is a point-in-time snapshot of table counts, exported as
// Prometheus gauges by the stats collector.
type ContentStats struct {
	Users    int64
	Titles   int64
	Reviews  int64
	Comments int64

	// MeanScore is nil when there are no reviews yet.
	MeanScore *float64
}
