package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beer-reviews/models"
)

func mergeInput(t *testing.T, breweries []models.Brewery) MergeInput {
	return MergeInput{
		ReviewsBA: testReviews(models.SourceBA, 100),
		ReviewsRB: testReviews(models.SourceRB, 50),
		Beers:     enrichedBeers(t, breweries),
		UsersBA:   testUsers("ba-user-"),
		UsersRB:   testUsers(""),
	}
}

func TestReviewMergerEndToEnd(t *testing.T) {
	m := NewReviewMerger(canonicalColumns(t), quietLogger())

	table, err := m.Merge(mergeInput(t, testBreweries()))
	require.NoError(t, err)

	require.Equal(t, 150, table.Len())
	assert.Equal(t, []string{
		"source", "date", "beer_id", "beer_name", "brewery_name", "brewery_location",
		"style", "abv", "blended_rating", "user_id", "user_name", "user_location",
		"user_rating_count", "appearance", "aroma", "palate", "taste", "overall",
		"rating", "text",
	}, table.Columns)

	ba := table.Record(4)
	assert.Equal(t, "ba", ba["source"])
	assert.Equal(t, "104", ba["beer_id"])
	assert.Equal(t, "BA Brewery 1", ba["brewery_name"])
	assert.Equal(t, "Belgium", ba["brewery_location"])
	assert.Equal(t, "Saison", ba["style"])
	assert.Equal(t, "6.5", ba["abv"])
	assert.Equal(t, "3.7", ba["blended_rating"])
	assert.Equal(t, "ba-user-4", ba["user_id"])
	assert.Equal(t, "5", ba["user_rating_count"])
	assert.Equal(t, "Nice: really.", ba["text"])

	rb := table.Record(100 + 7)
	assert.Equal(t, "rb", rb["source"])
	assert.Equal(t, "207", rb["beer_id"])
	assert.Equal(t, "RB Brewery 1", rb["brewery_name"])
	assert.Equal(t, "België", rb["brewery_location"])
	assert.Equal(t, "Saison/Farmhouse", rb["style"])
	assert.Equal(t, "2", rb["user_id"])
}

func TestReviewMergerKeepsUnmatchedReviews(t *testing.T) {
	in := mergeInput(t, testBreweries())
	in.ReviewsBA[0].BeerID = "999"
	in.ReviewsBA[0].UserID = "nobody"
	in.UsersRB = nil

	table, err := NewReviewMerger(canonicalColumns(t), quietLogger()).Merge(in)
	require.NoError(t, err)

	require.Equal(t, 150, table.Len())
	first := table.Record(0)
	assert.Equal(t, "999", first["beer_id"])
	assert.Equal(t, "", first["brewery_name"])
	assert.Equal(t, "", first["blended_rating"])
	assert.Equal(t, "", first["user_location"])
	assert.Equal(t, "", table.Record(120)["user_rating_count"])
}

func TestReviewMergerDetectsBreweryFanOut(t *testing.T) {
	breweries := append(testBreweries(), testBreweries()[0])

	table, err := NewReviewMerger(canonicalColumns(t), quietLogger()).Merge(mergeInput(t, breweries))

	var invariant *models.RowCountInvariantError
	require.True(t, errors.As(err, &invariant), "got %v", err)
	assert.Equal(t, 150, invariant.Expected)
	// 40 BA and 20 RB reviews sit on the four duplicated beers
	assert.Equal(t, 210, invariant.Got)
	assert.Nil(t, table.Rows)
}

func TestReviewMergerDetectsUserFanOut(t *testing.T) {
	in := mergeInput(t, testBreweries())
	in.UsersRB = append(in.UsersRB, in.UsersRB[0])

	_, err := NewReviewMerger(canonicalColumns(t), quietLogger()).Merge(in)

	var invariant *models.RowCountInvariantError
	require.True(t, errors.As(err, &invariant), "got %v", err)
	assert.Equal(t, 160, invariant.Got)
}

func TestReviewMergerRejectsNonIntegerBeerID(t *testing.T) {
	in := mergeInput(t, testBreweries())
	in.ReviewsRB[3].BeerID = "x12"

	_, err := NewReviewMerger(canonicalColumns(t), quietLogger()).Merge(in)

	var coercion *models.KeyCoercionError
	require.True(t, errors.As(err, &coercion), "got %v", err)
	assert.Equal(t, "reviews_rb", coercion.Table)
	assert.Equal(t, 3, coercion.Row)
}

func TestReviewMergerDoesNotModifyInput(t *testing.T) {
	in := mergeInput(t, testBreweries())
	want := testReviews(models.SourceBA, 100)

	_, err := NewReviewMerger(canonicalColumns(t), quietLogger()).Merge(in)
	require.NoError(t, err)

	assert.Equal(t, want, in.ReviewsBA)
}

func TestProjectUnknownField(t *testing.T) {
	cols := []models.ColumnRename{{From: "source", To: "source"}, {From: "brewery_id_ref", To: "brewery_id"}}

	_, err := Project(nil, cols)

	var rename *models.SchemaRenameError
	require.True(t, errors.As(err, &rename), "got %v", err)
	assert.Equal(t, "brewery_id_ref", rename.Column)
}
