package models

// Source identifies the platform a record came from. Its value doubles as the
// column suffix used to disambiguate per-platform fields.
type Source string

const (
	SourceBA Source = "ba"
	SourceRB Source = "rb"
)

// Suffix returns the column suffix for s, e.g. "_ba".
func (s Source) Suffix() string { return "_" + string(s) }

// Review labels expected in every raw review export.
const (
	LabelBeerName    = "beer_name"
	LabelBeerID      = "beer_id"
	LabelBreweryName = "brewery_name"
	LabelBreweryID   = "brewery_id"
	LabelStyle       = "style"
	LabelABV         = "abv"
	LabelDate        = "date"
	LabelUserName    = "user_name"
	LabelUserID      = "user_id"
	LabelAppearance  = "appearance"
	LabelAroma       = "aroma"
	LabelPalate      = "palate"
	LabelTaste       = "taste"
	LabelOverall     = "overall"
	LabelRating      = "rating"
	LabelText        = "text"
)

// ReviewLabels lists the labels the typed review adapter reads.
var ReviewLabels = []string{
	LabelBeerName, LabelBeerID, LabelBreweryName, LabelBreweryID, LabelStyle,
	LabelABV, LabelDate, LabelUserName, LabelUserID, LabelAppearance,
	LabelAroma, LabelPalate, LabelTaste, LabelOverall, LabelRating, LabelText,
}

// Unsuffixed reference column stems. Per-platform columns append
// Source.Suffix().
const (
	ColBeerID      = "beer_id"
	ColBeerName    = "beer_name"
	ColBreweryID   = "brewery_id"
	ColBreweryName = "brewery_name"
	ColStyle       = "style"
	ColABV         = "abv"
	ColNbrRatings  = "nbr_ratings"
	ColAvg         = "avg"

	ColID       = "id"
	ColLocation = "location"
	ColName     = "name"
	ColNbrBeers = "nbr_beers"

	ColUserID = "user_id"
)

// Suffixed returns each stem with the suffix of every source, BA first.
func Suffixed(stems ...string) []string {
	out := make([]string, 0, 2*len(stems))
	for _, src := range []Source{SourceBA, SourceRB} {
		for _, s := range stems {
			out = append(out, s+src.Suffix())
		}
	}
	return out
}

// Columns each typed reference adapter requires after renaming.
var (
	BeerColumns = Suffixed(ColBeerID, ColBeerName, ColBreweryID, ColBreweryName,
		ColStyle, ColABV, ColNbrRatings, ColAvg)
	BreweryColumns     = Suffixed(ColID, ColLocation, ColName, ColNbrBeers)
	UserColumns        = []string{ColUserID, ColLocation, ColNbrRatings}
	MatchedUserColumns = Suffixed(ColUserID, ColLocation, ColNbrRatings)
)

// Fields exposed by an EnrichedReview to the canonical projection.
const (
	FieldSource         = "source"
	FieldBeerID         = "beer_id"
	FieldBeerName       = "beer_name"
	FieldDate           = "date"
	FieldUserName       = "user_name"
	FieldUserID         = "user_id"
	FieldAppearance     = "appearance"
	FieldAroma          = "aroma"
	FieldPalate         = "palate"
	FieldTaste          = "taste"
	FieldOverall        = "overall"
	FieldRating         = "rating"
	FieldText           = "text"
	FieldBeerNameRef    = "beer_name_ref"
	FieldBreweryName    = "name"
	FieldBreweryLoc     = "location"
	FieldStyleRef       = "style_ref"
	FieldABVRef         = "abv_ref"
	FieldAvgBlended     = "avg_blended"
	FieldUserLocation   = "location_user"
	FieldUserNbrRatings = "nbr_ratings_user"
)

// EnrichedFields lists every field name EnrichedReview.Field resolves.
var EnrichedFields = []string{
	FieldSource, FieldBeerID, FieldBeerName, FieldDate, FieldUserName,
	FieldUserID, FieldAppearance, FieldAroma, FieldPalate, FieldTaste,
	FieldOverall, FieldRating, FieldText, FieldBeerNameRef, FieldBreweryName,
	FieldBreweryLoc, FieldStyleRef, FieldABVRef, FieldAvgBlended,
	FieldUserLocation, FieldUserNbrRatings,
}
