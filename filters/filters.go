// Package filters owns the search filter selection and its cascade-reset
// rules. The reducer is a pure function of the previous state plus one change
// event; the UI layer only dispatches events and re-renders.
package filters

import (
	"strconv"
	"strings"

	"chow/catalog"
)

// State is the current filter selection. Country, city, district and cuisine
// hold catalog ids; district may be the catalog.AllDistricts sentinel.
// A non-empty ManualArea supersedes the district for search purposes but does
// not invalidate the stored district value.
type State struct {
	Country       string  `json:"country"`
	City          string  `json:"city"`
	District      string  `json:"district"`
	Cuisine       string  `json:"cuisine"`
	MinRating     float64 `json:"minRating"`
	PriceLevel    int     `json:"priceLevel"`
	ManualArea    string  `json:"manualArea"`
	Wheelchair    bool    `json:"wheelchair"`
	ChildFriendly bool    `json:"childFriendly"`
	PetFriendly   bool    `json:"petFriendly"`
	OpenNow       bool    `json:"openNow"`
}

// Event is one change request against the state.
type Event struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Default returns the initial selection: Hong Kong / Hong Kong Island with no
// further narrowing.
func Default() State {
	return State{
		Country:  "hk",
		City:     "hk-island",
		District: catalog.AllDistricts,
		Cuisine:  catalog.AllCuisines,
	}
}

// Apply returns the state after one change event, plus a flag telling the
// caller that previously shown results are now stale. Country and city
// changes move the map centre, so their events flag results stale; district
// and manual-area changes narrow within the same centre and do not.
func Apply(s State, e Event) (State, bool) {
	stale := false

	switch e.Key {
	case "country":
		country := catalog.CountryByID(e.Value)
		if country == nil {
			if byName := catalog.CountryByName(e.Value); byName != nil {
				country = byName
			} else {
				return s, false
			}
		}
		s.Country = country.ID
		s.District = catalog.AllDistricts
		s.ManualArea = ""
		s.City = ""
		if first := catalog.FirstCity(country.ID); first != nil {
			s.City = first.ID
		}
		stale = true

	case "city":
		city := catalog.CityByID(e.Value)
		if city == nil {
			if byName := catalog.CityByName(e.Value); byName != nil {
				city = byName
			} else {
				return s, false
			}
		}
		if city.CountryID != s.Country {
			return s, false
		}
		s.City = city.ID
		s.District = catalog.AllDistricts
		s.ManualArea = ""
		stale = true

	case "district":
		if e.Value == catalog.AllDistricts {
			s.District = catalog.AllDistricts
		} else if d := catalog.DistrictByID(e.Value); d != nil && d.CityID == s.City {
			s.District = d.ID
		} else if d := catalog.DistrictByName(e.Value); d != nil && d.CityID == s.City {
			s.District = d.ID
		} else {
			return s, false
		}
		// A catalog district and a manual area are alternative refinements,
		// never a combined filter.
		s.ManualArea = ""

	case "manualArea":
		s.ManualArea = strings.TrimSpace(e.Value)
		if s.ManualArea != "" {
			s.District = catalog.AllDistricts
		}

	case "cuisine":
		if c := catalog.CuisineByID(e.Value); c != nil {
			s.Cuisine = c.ID
		}

	case "minRating":
		if v, err := strconv.ParseFloat(e.Value, 64); err == nil && v >= 0 && v <= 5 {
			s.MinRating = v
		}

	case "priceLevel":
		if v, err := strconv.Atoi(e.Value); err == nil && v >= 0 && v <= 4 {
			s.PriceLevel = v
		}

	case "wheelchair":
		s.Wheelchair = parseBool(e.Value)
	case "childFriendly":
		s.ChildFriendly = parseBool(e.Value)
	case "petFriendly":
		s.PetFriendly = parseBool(e.Value)
	case "openNow":
		s.OpenNow = parseBool(e.Value)
	}

	return s, stale
}

// Clear restores the initial defaults.
func Clear() State {
	return Default()
}

// LocationTerm returns the location refinement used when composing a search
// query: the manual area always wins when non-empty, otherwise the catalog
// district unless it is the AllDistricts sentinel.
func (s State) LocationTerm() string {
	if s.ManualArea != "" {
		return s.ManualArea
	}
	if s.District == catalog.AllDistricts {
		return ""
	}
	if d := catalog.DistrictByID(s.District); d != nil {
		return d.En
	}
	return ""
}

func parseBool(v string) bool {
	return v == "true" || v == "1" || v == "on"
}
