package services

import (
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"beer-reviews/config"
	"beer-reviews/models"
	"beer-reviews/utils"
)

func quietLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard) }

func canonicalColumns(t *testing.T) []models.ColumnRename {
	t.Helper()
	schema, err := config.DefaultSchema()
	require.NoError(t, err)
	return schema.Canonical
}

// testBreweries returns three breweries keyed (10,20), (11,21), (12,22).
func testBreweries() []models.Brewery {
	out := make([]models.Brewery, 3)
	for i := range out {
		out[i] = models.Brewery{
			BA: models.PlatformBrewery{ID: int64(10 + i), Name: fmt.Sprintf("BA Brewery %d", i), Location: "Belgium", NbrBeers: 4},
			RB: models.PlatformBrewery{ID: int64(20 + i), Name: fmt.Sprintf("RB Brewery %d", i), Location: "België", NbrBeers: 9},
		}
	}
	return out
}

// testBeers returns ten beers; beer i has BA id 100+i, RB id 200+i and
// brewery key (10+i%3, 20+i%3).
func testBeers() []models.Beer {
	out := make([]models.Beer, 10)
	for i := range out {
		out[i] = models.Beer{
			BA: models.PlatformBeer{
				ID: int64(100 + i), Name: fmt.Sprintf("Beer %d", i),
				BreweryID: int64(10 + i%3), Style: "Saison", ABV: 6.5,
				NbrRatings: 10, Avg: 4.0,
			},
			RB: models.PlatformBeer{
				ID: int64(200 + i), Name: fmt.Sprintf("Beer %d (RB)", i),
				BreweryID: int64(20 + i%3), Style: "Saison/Farmhouse", ABV: 6.4,
				NbrRatings: 30, Avg: 3.6,
			},
		}
	}
	return out
}

func testUsers(prefix string) []models.User {
	out := make([]models.User, 5)
	for i := range out {
		out[i] = models.User{ID: prefix + strconv.Itoa(i), Location: "Canada", NbrRatings: int64(i + 1)}
	}
	return out
}

// testReviews returns n reviews from src cycling over the ten test beers and
// five test users.
func testReviews(src models.Source, n int) []models.Review {
	base, userPrefix := 100, "ba-user-"
	if src == models.SourceRB {
		base, userPrefix = 200, ""
	}
	out := make([]models.Review, n)
	for i := range out {
		out[i] = models.Review{
			Source:      src,
			BeerName:    fmt.Sprintf("Beer %d", i%10),
			BeerID:      strconv.Itoa(base + i%10),
			BreweryName: "stale brewery name",
			Style:       "stale style",
			ABV:         "0.0",
			Date:        strconv.Itoa(1440064800 + i),
			UserName:    "someone",
			UserID:      " " + userPrefix + strconv.Itoa(i%5) + " ",
			Rating:      "3.75",
			Text:        "Nice: really.",
		}
	}
	return out
}

func enrichedBeers(t *testing.T, breweries []models.Brewery) []models.EnrichedBeer {
	t.Helper()
	rated := NewBeerAggregator(quietLogger()).Aggregate(testBeers())
	beers, err := NewBreweryJoiner(false, quietLogger()).Join(rated, breweries)
	require.NoError(t, err)
	return beers
}
