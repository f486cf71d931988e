package ingest

import (
	"errors"
	"io"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beer-reviews/config"
	"beer-reviews/models"
	"beer-reviews/utils"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	schema, err := config.DefaultSchema()
	require.NoError(t, err)
	return NewLoader(schema, ',', utils.NewLoggerTo(io.Discard))
}

func openTestdata(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestMangleDuplicates(t *testing.T) {
	got := mangleDuplicates([]string{"id", "name", "id", "name", "id", "sim"})
	assert.Equal(t, []string{"id", "name", "id.1", "name.1", "id.2", "sim"}, got)

	got = mangleDuplicates([]string{"id", "id.1", "id"})
	assert.Equal(t, []string{"id", "id.1", "id.2"}, got)
}

func TestLoadTable(t *testing.T) {
	l := newTestLoader(t)

	t.Run("skips provenance row and renames repeated columns", func(t *testing.T) {
		table, err := l.LoadTable(config.TableBreweries, openTestdata(t, "breweries.csv"))
		require.NoError(t, err)

		assert.Equal(t, []string{
			"id_ba", "location_ba", "name_ba", "nbr_beers_ba",
			"id_rb", "location_rb", "name_rb", "nbr_beers_rb",
		}, table.Columns)
		require.Equal(t, 2, table.Len())
		assert.Equal(t, "10093", table.Rows[0][0])
		assert.Equal(t, "4959", table.Rows[0][4])
	})

	t.Run("missing allow-listed column is fatal", func(t *testing.T) {
		raw := "ba,ba,rb,rb\nid,location,id,location\n1,X,2,Y\n"

		_, err := l.LoadTable(config.TableBreweries, strings.NewReader(raw))

		var rename *models.SchemaRenameError
		require.True(t, errors.As(err, &rename), "got %v", err)
		assert.Equal(t, "breweries", rename.Table)
		assert.Equal(t, "name", rename.Column)
	})

	t.Run("header only", func(t *testing.T) {
		_, err := l.LoadTable(config.TableBreweries, strings.NewReader("ba,ba\n"))
		require.Error(t, err)
	})
}

func TestLoadBeers(t *testing.T) {
	beers, err := newTestLoader(t).LoadBeers(openTestdata(t, "beers.csv"))
	require.NoError(t, err)
	require.Len(t, beers, 2)

	assert.Equal(t, int64(142544), beers[0].BA.ID)
	assert.Equal(t, int64(89471), beers[0].RB.ID)
	assert.Equal(t, models.BreweryKey{BA: 37262, RB: 1021}, beers[0].BreweryKey())
	assert.Equal(t, "Gluten-Free", beers[0].RB.Style)
	assert.Equal(t, 4.8, beers[0].BA.ABV)
	assert.Equal(t, int64(4), beers[1].BA.NbrRatings)
	assert.True(t, math.IsNaN(beers[1].RB.Avg), "empty average should load as NaN")
}

func TestLoadBeersRejectsMalformedKey(t *testing.T) {
	raw := "ba,ba,ba,ba,ba,ba,ba,ba,rb,rb,rb,rb,rb,rb,rb,rb\n" +
		"abv,avg,beer_id,beer_name,brewery_id,brewery_name,nbr_ratings,style,abv,avg,beer_id,beer_name,brewery_id,brewery_name,nbr_ratings,style\n" +
		"5,4,abc,X,1,B,1,S,5,4,2,X,3,B,1,S\n"

	_, err := newTestLoader(t).LoadBeers(strings.NewReader(raw))

	var coercion *models.KeyCoercionError
	require.True(t, errors.As(err, &coercion), "got %v", err)
	assert.Equal(t, "beer_id_ba", coercion.Column)
	assert.Equal(t, "abc", coercion.Value)
}

func TestLoadUsers(t *testing.T) {
	users, err := newTestLoader(t).LoadUsers(openTestdata(t, "users_ba.csv"))
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, models.User{
		ID:         "nmann08.184925",
		Location:   "United States, Washington",
		NbrRatings: 7820,
	}, users[0])
}

func TestDedupUsersKeepsFirst(t *testing.T) {
	users := []models.User{
		{ID: "42", Location: "v1", NbrRatings: 1},
		{ID: "7", Location: "other", NbrRatings: 3},
		{ID: "42", Location: "v2", NbrRatings: 2},
	}

	got := DedupUsers(users)

	require.Len(t, got, 2)
	assert.Equal(t, "v1", got[0].Location)
	assert.Equal(t, "7", got[1].ID)
	assert.Len(t, users, 3, "input must not be modified")
	assert.Equal(t, "v2", users[2].Location)
}

func TestLoadMatchedUsers(t *testing.T) {
	matched, err := newTestLoader(t).LoadMatchedUsers(openTestdata(t, "users_matched.csv"))
	require.NoError(t, err)
	require.Len(t, matched, 2)

	assert.Equal(t, "erzengel.248045", matched[0].BA.ID)
	assert.Equal(t, "83106", matched[0].RB.ID)
	assert.Equal(t, int64(8781), matched[0].RB.NbrRatings)
	assert.Equal(t, "gendv138.695700", matched[1].BA.ID)
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"142544", 142544, false},
		{" 37262 ", 37262, false},
		{"1234.0", 1234, false},
		{"12.5", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"nmann08.184925", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseKey(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "ParseKey(%q)", tt.raw)
			continue
		}
		require.NoError(t, err, "ParseKey(%q)", tt.raw)
		assert.Equal(t, tt.want, got, "ParseKey(%q)", tt.raw)
	}
}
