// Package places turns a filter selection plus free-text query into
// geofenced restaurant results from the Google Places web service.
package places

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"chow/app"
	"chow/catalog"
	"chow/data"
	"chow/filters"
)

// maxResults caps a result list, preserving provider ranking order.
const maxResults = 15

var mutex sync.RWMutex

// Place represents a restaurant returned by a search.
type Place struct {
	PlaceID          string   `json:"placeId"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Rating           float64  `json:"rating,omitempty"`
	UserRatingsTotal int      `json:"userRatingsTotal,omitempty"`
	PriceLevel       int      `json:"priceLevel,omitempty"`
	PhotoURL         string   `json:"photoUrl,omitempty"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	OpenNow          *bool    `json:"openNow,omitempty"`
	Types            []string `json:"types,omitempty"`
	Website          string   `json:"website,omitempty"`
	MapsURL          string   `json:"googleMapsUrl,omitempty"`
	Phone            string   `json:"phoneNumber,omitempty"`
	SiteTitle        string   `json:"siteTitle,omitempty"`
	SiteDescription  string   `json:"siteDescription,omitempty"`
	Distance         float64  `json:"distance,omitempty"` // metres from the city centre
}

// ErrNotConfigured is returned when no Places API key is set. The feature
// degrades to a configuration message, never a crash.
var ErrNotConfigured = errors.New("places: GOOGLE_PLACES_API_KEY not set")

// Client calls the places provider. Construct with NewClient and inject
// wherever searches are made; a nil key yields ErrNotConfigured on use.
type Client struct {
	key   string
	http  *http.Client
	cache *gocache.Cache
}

// NewClient returns a places client using the given API key.
func NewClient(key string) *Client {
	return &Client{
		key:   key,
		http:  &http.Client{Timeout: 15 * time.Second},
		cache: gocache.New(time.Hour, 10*time.Minute),
	}
}

// Ready reports whether the client has an API key configured.
func (c *Client) Ready() bool {
	return c != nil && c.key != ""
}

// cacheFileKey returns the data-store key for a city's last seen places.
func cacheFileKey(cityID string) string {
	return "places/" + strings.ToLower(cityID) + ".json"
}

// Load warms the local index from each city's cached places on disk.
func Load() {
	initIndex()
	loaded := 0
	for _, country := range catalog.Countries() {
		for _, city := range catalog.CitiesByCountry(country.ID) {
			var places []*Place
			if err := data.LoadJSON(cacheFileKey(city.ID), &places); err != nil || len(places) == 0 {
				continue
			}
			insertIndex(places)
			loaded++
		}
	}
	app.Log("places", "Loaded cached places for %d cities", loaded)
}

// Search executes a geofenced place search for the given filter state.
// Zero provider results are an empty list, not an error. When the provider
// is unreachable, previously indexed places for the same area are returned
// so a transient outage still shows something.
func (c *Client) Search(query string, st filters.State, lang catalog.Lang) ([]*Place, error) {
	if !c.Ready() {
		return nil, ErrNotConfigured
	}

	city := catalog.CityByID(st.City)
	if city == nil {
		city = catalog.CityByID(filters.Default().City)
	}

	searchQuery := ComposeQuery(query, st)
	cacheKey := fmt.Sprintf("%s|%s|%.1f|%d|%t", searchQuery, string(lang), st.MinRating, st.PriceLevel, st.OpenNow)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]*Place), nil
	}

	radiusM := int(city.RadiusKm * 1000)
	results, err := c.textSearch(searchQuery, city.Lat, city.Lng, radiusM, st.OpenNow, lang)
	if err != nil {
		app.Log("places", "Search failed, falling back to local index: %v", err)
		// Fallback results obey the same rules as provider results.
		if local := filterResults(searchLocal(query, city, radiusM), city, st); len(local) > 0 {
			return local, nil
		}
		return nil, fmt.Errorf("%s: %w", Message(lang).SearchError, err)
	}

	filtered := filterResults(results, city, st)

	c.cache.Set(cacheKey, filtered, gocache.DefaultExpiration)
	go func(cityID string, places []*Place) {
		insertIndex(places)
		if err := data.SaveJSON(cacheFileKey(cityID), places); err != nil {
			app.Log("places", "Failed to persist city cache for %s: %v", cityID, err)
		}
	}(city.ID, filtered)

	return filtered, nil
}

// filterResults applies the geofence, rating and price rules and caps the
// list. Provider ranking order is preserved.
func filterResults(results []*Place, city *catalog.City, st filters.State) []*Place {
	maxDistM := city.RadiusKm * 1000
	filtered := make([]*Place, 0, len(results))
	for _, p := range results {
		// The provider's radius search is circular and imprecise near shared
		// borders; re-check every coordinate against the city's own geometry.
		if city.Bounds != nil {
			if !city.Bounds.Contains(p.Lat, p.Lng) {
				continue
			}
			p.Distance = haversine(city.Lat, city.Lng, p.Lat, p.Lng)
		} else {
			dist := haversine(city.Lat, city.Lng, p.Lat, p.Lng)
			if dist > maxDistM {
				continue
			}
			p.Distance = dist
		}
		// Price levels are discrete 1-4 tiers: the filter is an exact match,
		// not a ceiling.
		if st.PriceLevel > 0 && p.PriceLevel != st.PriceLevel {
			continue
		}
		if st.MinRating > 0 && p.Rating < st.MinRating {
			continue
		}
		filtered = append(filtered, p)
		if len(filtered) == maxResults {
			break
		}
	}
	return filtered
}

// GetDetails re-queries the provider for extended fields. Returns nil when
// the provider cannot resolve the id: a previously fetched id can go stale.
func (c *Client) GetDetails(placeID string, lang catalog.Lang) (*Place, error) {
	if !c.Ready() {
		return nil, ErrNotConfigured
	}
	place, err := c.placeDetails(placeID, lang)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Message(lang).SearchError, err)
	}
	if place == nil {
		return nil, nil
	}
	// Best-effort website preview; failures are absorbed and the place is
	// returned with the fields already fetched.
	if place.Website != "" {
		if title, desc, err := websitePreview(c.http, place.Website); err == nil {
			place.SiteTitle = title
			place.SiteDescription = desc
		} else {
			app.Log("places", "Website preview failed for %s: %v", place.PlaceID, err)
		}
	}
	return place, nil
}

// sortByDistance orders places by distance from the reference point.
func sortByDistance(places []*Place) {
	sort.Slice(places, func(i, j int) bool {
		return places[i].Distance < places[j].Distance
	})
}
