package services

import (
	"beer-reviews/models"
	"beer-reviews/utils"
)

// MergeInput holds everything the merge consumes. Users are the per-platform
// tables as loaded, not the cross-platform deduplicated one, which only covers
// users active on both platforms.
type MergeInput struct {
	ReviewsBA []models.Review
	ReviewsRB []models.Review
	Beers     []models.EnrichedBeer
	UsersBA   []models.User
	UsersRB   []models.User
}

// ReviewMerger produces the canonical review table.
type ReviewMerger struct {
	logger    *utils.Logger
	cleaner   *Cleaner
	canonical []models.ColumnRename
}

// NewReviewMerger creates a merger projecting onto the canonical columns.
func NewReviewMerger(canonical []models.ColumnRename, logger *utils.Logger) *ReviewMerger {
	return &ReviewMerger{
		logger:    logger,
		cleaner:   NewCleaner(logger),
		canonical: canonical,
	}
}

// Merge joins each platform's reviews to the beer reference on that
// platform's beer id and to that platform's users on user id, stacks BA then
// RB, and projects the result onto the canonical columns. The stacked row
// count must equal the number of input reviews; anything else means a join
// fanned out or lost rows, and no table is returned.
func (m *ReviewMerger) Merge(in MergeInput) (models.Table, error) {
	nBA, nRB := len(in.ReviewsBA), len(in.ReviewsRB)

	keyedBA, err := m.cleaner.Clean(in.ReviewsBA)
	if err != nil {
		return models.Table{}, err
	}
	keyedRB, err := m.cleaner.Clean(in.ReviewsRB)
	if err != nil {
		return models.Table{}, err
	}

	enrichedBA := m.joinUsers(models.SourceBA, m.joinBeers(models.SourceBA, keyedBA, in.Beers), in.UsersBA)
	enrichedRB := m.joinUsers(models.SourceRB, m.joinBeers(models.SourceRB, keyedRB, in.Beers), in.UsersRB)

	merged := make([]models.EnrichedReview, 0, len(enrichedBA)+len(enrichedRB))
	merged = append(merged, enrichedBA...)
	merged = append(merged, enrichedRB...)

	if len(merged) != nBA+nRB {
		m.logger.Error("[merger] Row count invariant violated: %d + %d reviews merged into %d rows",
			nBA, nRB, len(merged))
		return models.Table{}, &models.RowCountInvariantError{Expected: nBA + nRB, Got: len(merged)}
	}

	table, err := Project(merged, m.canonical)
	if err != nil {
		return models.Table{}, err
	}
	m.logger.Info("[merger] Canonical table: %d rows × %d columns", table.Len(), len(table.Columns))
	return table, nil
}

// joinBeers left-joins reviews to beers on the src side's beer id. Every
// matching beer row yields an output row.
func (m *ReviewMerger) joinBeers(src models.Source, reviews []models.KeyedReview, beers []models.EnrichedBeer) []models.EnrichedReview {
	index := make(map[int64][]models.EnrichedBeer, len(beers))
	for _, b := range beers {
		id := b.Side(src).ID
		index[id] = append(index[id], b)
	}

	out := make([]models.EnrichedReview, 0, len(reviews))
	unmatched := 0
	for _, r := range reviews {
		matches := index[r.BeerKey]
		if len(matches) == 0 {
			unmatched++
			out = append(out, models.EnrichedReview{KeyedReview: r})
			continue
		}
		for _, b := range matches {
			beer := b
			out = append(out, models.EnrichedReview{KeyedReview: r, Beer: &beer})
		}
	}

	if unmatched > 0 {
		m.logger.Warn("[merger] %s: %d of %d reviews matched no beer", src, unmatched, len(reviews))
	}
	return out
}

// joinUsers left-joins enriched reviews to users on user id.
func (m *ReviewMerger) joinUsers(src models.Source, reviews []models.EnrichedReview, users []models.User) []models.EnrichedReview {
	index := make(map[string][]models.User, len(users))
	for _, u := range users {
		index[u.ID] = append(index[u.ID], u)
	}

	out := make([]models.EnrichedReview, 0, len(reviews))
	unmatched := 0
	for _, r := range reviews {
		matches := index[r.UserKey]
		if len(matches) == 0 {
			unmatched++
			out = append(out, r)
			continue
		}
		for _, u := range matches {
			user := u
			joined := r
			joined.User = &user
			out = append(out, joined)
		}
	}

	if unmatched > 0 {
		m.logger.Warn("[merger] %s: %d of %d reviews matched no user", src, unmatched, len(reviews))
	}
	return out
}

// Project renders merged reviews as a table with one column per entry of
// cols, renaming each field from its merged name to its canonical one. A
// field name the merged review does not expose is a SchemaRenameError.
func Project(rows []models.EnrichedReview, cols []models.ColumnRename) (models.Table, error) {
	var probe models.EnrichedReview
	names := make([]string, len(cols))
	for i, c := range cols {
		if _, ok := probe.Field(c.From); !ok {
			return models.Table{}, &models.SchemaRenameError{Table: "canonical", Column: c.From}
		}
		names[i] = c.To
	}

	out := models.Table{Columns: names, Rows: make([][]string, len(rows))}
	for r, e := range rows {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i], _ = e.Field(c.From)
		}
		out.Rows[r] = row
	}
	return out, nil
}
