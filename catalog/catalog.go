// Package catalog holds the static location and cuisine reference data:
// countries, cities, districts and cuisines, each with stable ids and
// zh/en/ja labels. The data is embedded at build time and immutable.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed locations.json
var locationsJSON []byte

// AllDistricts is the sentinel district id meaning "no district narrowing".
const AllDistricts = "all"

// AllCuisines is the sentinel cuisine id meaning "no cuisine narrowing".
const AllCuisines = "all"

// Item is a localized catalog record.
type Item struct {
	ID string `json:"id"`
	Zh string `json:"zh"`
	En string `json:"en"`
	Ja string `json:"ja,omitempty"`
}

// Bounds is a rectangular lat/lng bounding box. Used for cities whose
// subdivisions share a border (e.g. regions split by a harbour) where a
// plain radius would leak results across the border.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// Contains reports whether the coordinate lies inside the box.
func (b *Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// Country is a top-level catalog node.
type Country struct {
	Item
}

// City belongs to a country and carries the search geometry: a reference
// coordinate plus either a bounding box or a maximum radius.
type City struct {
	Item
	CountryID string  `json:"countryId"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	RadiusKm  float64 `json:"radius_km"`
	Bounds    *Bounds `json:"bounds,omitempty"`
}

// District belongs to a city.
type District struct {
	Item
	CityID string `json:"cityId"`
}

// Cuisine carries the English provider search keyword used when composing
// place-search queries.
type Cuisine struct {
	Item
	Keyword string `json:"keyword"`
}

type dataset struct {
	Countries []Country  `json:"countries"`
	Cities    []City     `json:"cities"`
	Districts []District `json:"districts"`
	Cuisines  []Cuisine  `json:"cuisines"`
}

var data dataset

// allDistrictsItem and allCuisinesItem are the localized sentinel records.
var allDistrictsItem = Item{ID: AllDistricts, Zh: "全部地區", En: "All Districts", Ja: "すべてのエリア"}

func init() {
	if err := json.Unmarshal(locationsJSON, &data); err != nil {
		panic(fmt.Sprintf("catalog: failed to parse locations.json: %v", err))
	}
	if err := validate(); err != nil {
		panic(fmt.Sprintf("catalog: invalid locations.json: %v", err))
	}
}

// validate checks parent references: every city's countryId must resolve to a
// country and every district's cityId to a city.
func validate() error {
	countries := map[string]bool{}
	for _, c := range data.Countries {
		if c.ID == "" || c.En == "" {
			return fmt.Errorf("country %q missing id or en label", c.Zh)
		}
		countries[c.ID] = true
	}
	cities := map[string]bool{}
	for _, c := range data.Cities {
		if !countries[c.CountryID] {
			return fmt.Errorf("city %s references unknown country %q", c.ID, c.CountryID)
		}
		cities[c.ID] = true
	}
	for _, d := range data.Districts {
		if !cities[d.CityID] {
			return fmt.Errorf("district %s references unknown city %q", d.ID, d.CityID)
		}
	}
	return nil
}

// Countries returns all countries in catalog order.
func Countries() []Country {
	return data.Countries
}

// Cuisines returns all cuisines in catalog order.
func Cuisines() []Cuisine {
	return data.Cuisines
}

// AllDistrictsSentinel returns the localized "All Districts" record.
func AllDistrictsSentinel() Item {
	return allDistrictsItem
}

// CountryByID returns the country with the given id, or nil.
func CountryByID(id string) *Country {
	for i := range data.Countries {
		if data.Countries[i].ID == id {
			return &data.Countries[i]
		}
	}
	return nil
}

// CityByID returns the city with the given id, or nil.
func CityByID(id string) *City {
	for i := range data.Cities {
		if data.Cities[i].ID == id {
			return &data.Cities[i]
		}
	}
	return nil
}

// DistrictByID returns the district with the given id, or nil.
// The AllDistricts sentinel has no District record.
func DistrictByID(id string) *District {
	for i := range data.Districts {
		if data.Districts[i].ID == id {
			return &data.Districts[i]
		}
	}
	return nil
}

// CuisineByID returns the cuisine with the given id, or nil.
func CuisineByID(id string) *Cuisine {
	for i := range data.Cuisines {
		if data.Cuisines[i].ID == id {
			return &data.Cuisines[i]
		}
	}
	return nil
}

// CitiesByCountry returns the cities of a country in catalog order.
func CitiesByCountry(countryID string) []City {
	var cities []City
	for _, c := range data.Cities {
		if c.CountryID == countryID {
			cities = append(cities, c)
		}
	}
	return cities
}

// FirstCity returns the first city of a country, or nil when the country has
// no cities.
func FirstCity(countryID string) *City {
	for i := range data.Cities {
		if data.Cities[i].CountryID == countryID {
			return &data.Cities[i]
		}
	}
	return nil
}

// DistrictsByCity returns the districts of a city in catalog order.
func DistrictsByCity(cityID string) []District {
	var districts []District
	for _, d := range data.Districts {
		if d.CityID == cityID {
			districts = append(districts, d)
		}
	}
	return districts
}

// CountryByName returns the country matching any language label, or nil.
func CountryByName(name string) *Country {
	for i := range data.Countries {
		if matches(data.Countries[i].Item, name) {
			return &data.Countries[i]
		}
	}
	return nil
}

// CityByName returns the city matching any language label, or nil.
func CityByName(name string) *City {
	for i := range data.Cities {
		if matches(data.Cities[i].Item, name) {
			return &data.Cities[i]
		}
	}
	return nil
}

// DistrictByName returns the district matching any language label, or nil.
func DistrictByName(name string) *District {
	for i := range data.Districts {
		if matches(data.Districts[i].Item, name) {
			return &data.Districts[i]
		}
	}
	return nil
}

func matches(item Item, name string) bool {
	return name != "" && (item.Zh == name || item.En == name || item.Ja == name || item.ID == name)
}
