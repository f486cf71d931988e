package services

import (
	"beer-reviews/models"
	"beer-reviews/utils"
)

// BreweryJoiner left-joins beers to breweries on the composite brewery key.
type BreweryJoiner struct {
	logger *utils.Logger
	strict bool
}

// NewBreweryJoiner creates a joiner. With strict set, a composite key held by
// more than one brewery fails the join up front; otherwise it is logged and
// the join fans out.
func NewBreweryJoiner(strict bool, logger *utils.Logger) *BreweryJoiner {
	return &BreweryJoiner{logger: logger, strict: strict}
}

// Join returns one EnrichedBeer per matching brewery for every beer, or a
// single EnrichedBeer with a nil Brewery when nothing matches.
func (j *BreweryJoiner) Join(beers []models.RatedBeer, breweries []models.Brewery) ([]models.EnrichedBeer, error) {
	keys := utils.NewKeySet[models.BreweryKey]()
	index := make(map[models.BreweryKey][]models.Brewery, len(breweries))
	for _, b := range breweries {
		k := b.Key()
		keys.Add(k)
		index[k] = append(index[k], b)
	}

	if dups, counts := keys.Repeated(); len(dups) > 0 {
		if j.strict {
			return nil, &models.DuplicateKeyError{
				Table: "breweries",
				Key:   dups[0].String(),
				Count: counts[0],
			}
		}
		j.logger.Warn("[joiner] %d brewery keys are not unique (first: %s ×%d); beers on them will fan out",
			len(dups), dups[0], counts[0])
	}

	out := make([]models.EnrichedBeer, 0, len(beers))
	unmatched := 0
	for _, beer := range beers {
		matches := index[beer.BreweryKey()]
		if len(matches) == 0 {
			unmatched++
			out = append(out, models.EnrichedBeer{RatedBeer: beer})
			continue
		}
		for _, m := range matches {
			brewery := m
			out = append(out, models.EnrichedBeer{RatedBeer: beer, Brewery: &brewery})
		}
	}

	j.logger.Info("[joiner] Joined %d beers → %d rows (%d without brewery)",
		len(beers), len(out), unmatched)
	return out, nil
}
