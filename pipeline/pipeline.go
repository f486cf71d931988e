// Package pipeline runs the one-shot review merge from raw inputs to the
// canonical table.
package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"beer-reviews/config"
	"beer-reviews/ingest"
	"beer-reviews/models"
	"beer-reviews/services"
	"beer-reviews/utils"
)

// Sources are the raw inputs of one run. UsersMatched is optional.
type Sources struct {
	ReviewsBA    io.Reader
	ReviewsRB    io.Reader
	Beers        io.Reader
	Breweries    io.Reader
	UsersBA      io.Reader
	UsersRB      io.Reader
	UsersMatched io.Reader
}

// Options tune how reference files are read and joined.
type Options struct {
	Delimiter         rune
	StrictBreweryKeys bool
}

// Counts records the size of each intermediate table.
type Counts struct {
	ReviewsBA     int
	ReviewsRB     int
	Beers         int
	Breweries     int
	EnrichedBeers int
	UsersBA       int
	UsersRB       int
	MatchedUsers  int
}

// Result is the output of a successful run.
type Result struct {
	RunID        string
	Canonical    models.Table
	MatchedUsers []models.MatchedUser
	Counts       Counts
}

// Run executes every stage in order. Any error means no trustworthy output
// was produced; nothing partial is returned.
func Run(src Sources, schema *config.Schema, opts Options, logger *utils.Logger) (*Result, error) {
	runID := uuid.NewString()
	log := logger.WithTag(runID[:8])
	log.Info("[pipeline] Run %s starting", runID)

	var c Counts

	reviewsBA, err := parseReviews(src.ReviewsBA, models.SourceBA, schema)
	if err != nil {
		return nil, err
	}
	reviewsRB, err := parseReviews(src.ReviewsRB, models.SourceRB, schema)
	if err != nil {
		return nil, err
	}
	c.ReviewsBA, c.ReviewsRB = len(reviewsBA), len(reviewsRB)
	log.Info("[pipeline] Parsed %d BA and %d RB reviews", c.ReviewsBA, c.ReviewsRB)

	loader := ingest.NewLoader(schema, opts.Delimiter, log)
	beers, err := loader.LoadBeers(src.Beers)
	if err != nil {
		return nil, fmt.Errorf("beers: %w", err)
	}
	breweries, err := loader.LoadBreweries(src.Breweries)
	if err != nil {
		return nil, fmt.Errorf("breweries: %w", err)
	}
	usersBA, err := loader.LoadUsers(src.UsersBA)
	if err != nil {
		return nil, fmt.Errorf("users (ba): %w", err)
	}
	usersRB, err := loader.LoadUsers(src.UsersRB)
	if err != nil {
		return nil, fmt.Errorf("users (rb): %w", err)
	}
	c.Beers, c.Breweries, c.UsersBA, c.UsersRB = len(beers), len(breweries), len(usersBA), len(usersRB)

	var matched []models.MatchedUser
	if src.UsersMatched != nil {
		matched, err = loader.LoadMatchedUsers(src.UsersMatched)
		if err != nil {
			return nil, fmt.Errorf("matched users: %w", err)
		}
		c.MatchedUsers = len(matched)
	}

	rated := services.NewBeerAggregator(log).Aggregate(beers)
	enriched, err := services.NewBreweryJoiner(opts.StrictBreweryKeys, log).Join(rated, breweries)
	if err != nil {
		return nil, fmt.Errorf("brewery join: %w", err)
	}
	c.EnrichedBeers = len(enriched)

	canonical, err := services.NewReviewMerger(schema.Canonical, log).Merge(services.MergeInput{
		ReviewsBA: reviewsBA,
		ReviewsRB: reviewsRB,
		Beers:     enriched,
		UsersBA:   usersBA,
		UsersRB:   usersRB,
	})
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	log.Info("[pipeline] Run %s done: %d canonical reviews", runID, canonical.Len())
	return &Result{
		RunID:        runID,
		Canonical:    canonical,
		MatchedUsers: matched,
		Counts:       c,
	}, nil
}

func parseReviews(r io.Reader, src models.Source, schema *config.Schema) ([]models.Review, error) {
	table, err := ingest.ParseReviews(r)
	if err != nil {
		return nil, fmt.Errorf("reviews (%s): %w", src, err)
	}
	reviews, err := ingest.ReviewsFromTable(table, src, schema.Reviews.Required)
	if err != nil {
		return nil, fmt.Errorf("reviews (%s): %w", src, err)
	}
	return reviews, nil
}

// OpenSources opens every input file named in cfg. The returned close
// function releases whatever was opened, also when an error is returned.
func OpenSources(cfg *config.Config) (Sources, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	open := func(path string) (io.Reader, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		files = append(files, f)
		return f, nil
	}

	var src Sources
	targets := []struct {
		path string
		dst  *io.Reader
	}{
		{cfg.ReviewsBAPath, &src.ReviewsBA},
		{cfg.ReviewsRBPath, &src.ReviewsRB},
		{cfg.BeersPath, &src.Beers},
		{cfg.BreweriesPath, &src.Breweries},
		{cfg.UsersBAPath, &src.UsersBA},
		{cfg.UsersRBPath, &src.UsersRB},
		{cfg.UsersMatchedPath, &src.UsersMatched},
	}
	for _, tg := range targets {
		if tg.path == "" && tg.dst == &src.UsersMatched {
			continue
		}
		r, err := open(tg.path)
		if err != nil {
			return Sources{}, closeAll, err
		}
		*tg.dst = r
	}
	return src, closeAll, nil
}
