package models

// StyleCount is the number of canonical reviews for one style.
type StyleCount struct {
	Style string
	Count int
}

// InsightReport holds summary statistics over the canonical review table.
type InsightReport struct {
	TotalReviews    int
	ReviewsBySource map[string]int
	RatedReviews    int
	UnratedReviews  int
	AverageBlended  float64
	TopStyles       []StyleCount
}
