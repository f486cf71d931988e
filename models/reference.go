package models

import "fmt"

// PlatformBeer is one platform's view of a beer.
type PlatformBeer struct {
	ID          int64
	Name        string
	BreweryID   int64
	BreweryName string
	Style       string
	ABV         float64
	NbrRatings  int64
	Avg         float64
}

// Beer is a beer matched across both platforms.
type Beer struct {
	BA PlatformBeer
	RB PlatformBeer
}

// Side returns the platform-specific half of b.
func (b Beer) Side(s Source) PlatformBeer {
	if s == SourceRB {
		return b.RB
	}
	return b.BA
}

// BreweryKey returns the composite brewery key b links to.
func (b Beer) BreweryKey() BreweryKey {
	return BreweryKey{BA: b.BA.BreweryID, RB: b.RB.BreweryID}
}

// RatedBeer is a Beer plus its usage-weighted rating across platforms.
// Blended is NaN when neither platform has ratings.
type RatedBeer struct {
	Beer
	Blended float64
}

// BreweryKey is the cross-platform composite brewery identifier. Both ids
// must match for two records to join.
type BreweryKey struct {
	BA int64
	RB int64
}

func (k BreweryKey) String() string {
	return fmt.Sprintf("(%d, %d)", k.BA, k.RB)
}

// PlatformBrewery is one platform's view of a brewery.
type PlatformBrewery struct {
	ID       int64
	Location string
	Name     string
	NbrBeers int64
}

// Brewery is a brewery matched across both platforms.
type Brewery struct {
	BA PlatformBrewery
	RB PlatformBrewery
}

// Side returns the platform-specific half of b.
func (b Brewery) Side(s Source) PlatformBrewery {
	if s == SourceRB {
		return b.RB
	}
	return b.BA
}

func (b Brewery) Key() BreweryKey {
	return BreweryKey{BA: b.BA.ID, RB: b.RB.ID}
}

// EnrichedBeer is a rated beer after the brewery join. Brewery is nil when no
// brewery matched the composite key.
type EnrichedBeer struct {
	RatedBeer
	Brewery *Brewery
}

// User is a platform user as projected for the merge.
type User struct {
	ID         string
	Location   string
	NbrRatings int64
}

// MatchedUser pairs the accounts of one person on both platforms.
type MatchedUser struct {
	BA User
	RB User
}
