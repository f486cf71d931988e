package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"beer-reviews/models"
	"beer-reviews/utils"
)

// Canonical columns the report reads.
const (
	insightSourceCol  = "source"
	insightBlendedCol = "blended_rating"
	insightStyleCol   = "style"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(t models.Table) *models.InsightReport {
	report := &models.InsightReport{
		ReviewsBySource: make(map[string]int),
	}

	if t.Len() == 0 {
		return report
	}

	report.TotalReviews = t.Len()

	srcCol := t.Index(insightSourceCol)
	blendedCol := t.Index(insightBlendedCol)
	styleCol := t.Index(insightStyleCol)
	if srcCol < 0 || blendedCol < 0 || styleCol < 0 {
		s.logger.Warn("[insights] Canonical table lacks %s/%s/%s; reporting totals only",
			insightSourceCol, insightBlendedCol, insightStyleCol)
		return report
	}

	styles := make(map[string]int)
	var total float64
	for _, row := range t.Rows {
		report.ReviewsBySource[row[srcCol]]++

		if v := row[blendedCol]; v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				report.RatedReviews++
				total += f
			}
		}

		if style := row[styleCol]; style != "" {
			styles[style]++
		}
	}
	report.UnratedReviews = report.TotalReviews - report.RatedReviews

	if report.RatedReviews > 0 {
		report.AverageBlended = round2(total / float64(report.RatedReviews))
	}

	// Top 5 styles by review count, ties by name
	for style, n := range styles {
		report.TopStyles = append(report.TopStyles, models.StyleCount{Style: style, Count: n})
	}
	sort.Slice(report.TopStyles, func(i, j int) bool {
		a, b := report.TopStyles[i], report.TopStyles[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Style < b.Style
	})
	if len(report.TopStyles) > 5 {
		report.TopStyles = report.TopStyles[:5]
	}

	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🍺 CANONICAL REVIEW TABLE\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total reviews          : \033[1m%d\033[0m\n", r.TotalReviews)
	sources := make([]string, 0, len(r.ReviewsBySource))
	for src := range r.ReviewsBySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		fmt.Printf("  %-22s : \033[1m%d\033[0m\n", "Reviews from "+src, r.ReviewsBySource[src])
	}
	fmt.Println()

	// Blended rating
	fmt.Printf("\033[1;33m  Blended Rating\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.RatedReviews > 0 {
		fmt.Printf("  Mean over reviews : \033[1;32m%.2f\033[0m\n", r.AverageBlended)
		fmt.Printf("  Reviews rated     : %d\n", r.RatedReviews)
		fmt.Printf("  Reviews unrated   : %d\n", r.UnratedReviews)
	} else {
		fmt.Printf("  No blended ratings available\n")
	}
	fmt.Println()

	// ── TOP 5 STYLES ─────────────────────────────────────────────────────
	fmt.Printf("\033[1;33m  Top 5 Styles by Reviews\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopStyles) == 0 {
		fmt.Printf("  No style data\n")
	} else {
		for i, sc := range r.TopStyles {
			fmt.Printf("  \033[1m%d.\033[0m %-40s %d\n", i+1, truncate(sc.Style, 38), sc.Count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
