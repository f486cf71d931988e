package models

import (
	"math"
	"strconv"
)

// Review is one parsed review block, values kept verbatim from the export.
type Review struct {
	Source      Source
	BeerName    string
	BeerID      string
	BreweryName string
	BreweryID   string
	Style       string
	ABV         string
	Date        string
	UserName    string
	UserID      string
	Appearance  string
	Aroma       string
	Palate      string
	Taste       string
	Overall     string
	Rating      string
	Text        string
}

// ReviewContent is a Review minus the fields the beer join reintroduces
// (brewery name and id, style, ABV).
type ReviewContent struct {
	Source     Source
	BeerName   string
	BeerID     string
	Date       string
	UserName   string
	UserID     string
	Appearance string
	Aroma      string
	Palate     string
	Taste      string
	Overall    string
	Rating     string
	Text       string
}

// Content drops the join-supplied fields from r.
func (r Review) Content() ReviewContent {
	return ReviewContent{
		Source:     r.Source,
		BeerName:   r.BeerName,
		BeerID:     r.BeerID,
		Date:       r.Date,
		UserName:   r.UserName,
		UserID:     r.UserID,
		Appearance: r.Appearance,
		Aroma:      r.Aroma,
		Palate:     r.Palate,
		Taste:      r.Taste,
		Overall:    r.Overall,
		Rating:     r.Rating,
		Text:       r.Text,
	}
}

// KeyedReview carries review content with join keys coerced to their key
// types.
type KeyedReview struct {
	ReviewContent
	BeerKey int64
	UserKey string
}

// EnrichedReview is a keyed review after the beer and user joins. Beer and
// User are nil when the join found no match.
type EnrichedReview struct {
	KeyedReview
	Beer *EnrichedBeer
	User *User
}

// Field resolves one of EnrichedFields. Beer and brewery attributes come
// from the reviewing platform's side of the joined records.
func (e EnrichedReview) Field(name string) (string, bool) {
	switch name {
	case FieldSource:
		return string(e.Source), true
	case FieldBeerID:
		return strconv.FormatInt(e.BeerKey, 10), true
	case FieldBeerName:
		return e.BeerName, true
	case FieldDate:
		return e.Date, true
	case FieldUserName:
		return e.UserName, true
	case FieldUserID:
		return e.UserKey, true
	case FieldAppearance:
		return e.Appearance, true
	case FieldAroma:
		return e.Aroma, true
	case FieldPalate:
		return e.Palate, true
	case FieldTaste:
		return e.Taste, true
	case FieldOverall:
		return e.Overall, true
	case FieldRating:
		return e.Rating, true
	case FieldText:
		return e.Text, true
	case FieldBeerNameRef, FieldStyleRef, FieldABVRef, FieldAvgBlended:
		if e.Beer == nil {
			return "", true
		}
		side := e.Beer.Side(e.Source)
		switch name {
		case FieldBeerNameRef:
			return side.Name, true
		case FieldStyleRef:
			return side.Style, true
		case FieldABVRef:
			return FormatFloat(side.ABV), true
		default:
			return FormatFloat(e.Beer.Blended), true
		}
	case FieldBreweryName, FieldBreweryLoc:
		if e.Beer == nil || e.Beer.Brewery == nil {
			return "", true
		}
		side := e.Beer.Brewery.Side(e.Source)
		if name == FieldBreweryName {
			return side.Name, true
		}
		return side.Location, true
	case FieldUserLocation:
		if e.User == nil {
			return "", true
		}
		return e.User.Location, true
	case FieldUserNbrRatings:
		if e.User == nil {
			return "", true
		}
		return strconv.FormatInt(e.User.NbrRatings, 10), true
	}
	return "", false
}

// FormatFloat renders f in its shortest exact form; NaN renders empty.
func FormatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
