package services

import (
	"math"

	"beer-reviews/models"
	"beer-reviews/utils"
)

// BeerAggregator derives the blended rating of each beer across platforms.
type BeerAggregator struct {
	logger *utils.Logger
}

func NewBeerAggregator(logger *utils.Logger) *BeerAggregator {
	return &BeerAggregator{logger: logger}
}

// Aggregate returns one RatedBeer per input beer, in input order.
func (a *BeerAggregator) Aggregate(beers []models.Beer) []models.RatedBeer {
	out := make([]models.RatedBeer, len(beers))
	unrated := 0
	for i, b := range beers {
		blended := Blend(b.BA.Avg, b.BA.NbrRatings, b.RB.Avg, b.RB.NbrRatings)
		if math.IsNaN(blended) {
			unrated++
		}
		out[i] = models.RatedBeer{Beer: b, Blended: blended}
	}

	a.logger.Info("[aggregator] Blended ratings for %d beers (%d without ratings)", len(out), unrated)
	return out
}

// Blend weights each platform's average by its rating count:
//
//	(avgA*nA + avgB*nB) / (nA + nB)
//
// A side with no ratings contributes nothing, so its average may be NaN.
// With no ratings on either side the result is NaN.
func Blend(avgA float64, nA int64, avgB float64, nB int64) float64 {
	var sum float64
	if nA != 0 {
		sum += avgA * float64(nA)
	}
	if nB != 0 {
		sum += avgB * float64(nB)
	}
	total := nA + nB
	if total == 0 {
		return math.NaN()
	}
	return sum / float64(total)
}
