package services

import (
	"beer-reviews/ingest"
	"beer-reviews/models"
	"beer-reviews/utils"
)

// Cleaner prepares parsed reviews for joining.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean drops the fields the beer join reintroduces and coerces the join
// keys: user ids to trimmed text, beer ids to integers. A beer id that is not
// an integer aborts the whole batch.
func (c *Cleaner) Clean(reviews []models.Review) ([]models.KeyedReview, error) {
	result := make([]models.KeyedReview, 0, len(reviews))

	for i, r := range reviews {
		beerKey, err := ingest.ParseKey(r.BeerID)
		if err != nil {
			return nil, &models.KeyCoercionError{
				Table:  "reviews" + r.Source.Suffix(),
				Column: models.LabelBeerID,
				Row:    i,
				Value:  r.BeerID,
			}
		}

		result = append(result, models.KeyedReview{
			ReviewContent: r.Content(),
			BeerKey:       beerKey,
			UserKey:       ingest.NormaliseUserID(r.UserID),
		})
	}

	c.logger.Debug("[cleaner] Keyed %d reviews", len(result))
	return result, nil
}
