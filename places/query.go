package places

import (
	"strings"

	sanitize "github.com/mrz1836/go-sanitize"

	"chow/catalog"
	"chow/filters"
)

// amenityPhrases are fixed English search phrases. Provider search quality
// for these terms depends on English phrasing regardless of UI language.
const (
	wheelchairPhrase = "wheelchair accessible"
	childPhrase      = "child friendly"
	petPhrase        = "pet friendly"
)

// ComposeQuery builds the free-text provider query from the user's keyword
// and the filter state. Order: keyword, cuisine keyword, district or manual
// area, city, amenity phrases. The manual area always wins over the catalog
// district when non-empty.
func ComposeQuery(query string, st filters.State) string {
	parts := []string{sanitizeTerm(query)}

	cuisineKeyword := "restaurant"
	if c := catalog.CuisineByID(st.Cuisine); c != nil {
		cuisineKeyword = c.Keyword
	}
	parts = append(parts, cuisineKeyword)

	parts = append(parts, sanitizeTerm(st.LocationTerm()))

	if city := catalog.CityByID(st.City); city != nil {
		parts = append(parts, city.En)
	}

	if st.Wheelchair {
		parts = append(parts, wheelchairPhrase)
	}
	if st.ChildFriendly {
		parts = append(parts, childPhrase)
	}
	if st.PetFriendly {
		parts = append(parts, petPhrase)
	}

	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// sanitizeTerm strips control characters and collapses whitespace in
// user-entered text before it reaches the provider.
func sanitizeTerm(s string) string {
	s = sanitize.SingleLine(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}
