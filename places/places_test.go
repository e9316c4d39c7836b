package places

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"chow/catalog"
	"chow/filters"
)

func testPlace(id string, lat, lng float64, price int, rating float64) *Place {
	return &Place{
		PlaceID: id, Name: "Place " + id, Address: "somewhere",
		Lat: lat, Lng: lng, PriceLevel: price, Rating: rating,
	}
}

func TestFilterResultsBounds(t *testing.T) {
	// Hong Kong Island has a bounding box; places across the harbour in
	// Kowloon are inside the search radius but outside the box.
	city := catalog.CityByID("hk-island")
	if city == nil || city.Bounds == nil {
		t.Fatal("hk-island must have bounds")
	}
	results := []*Place{
		testPlace("island", 22.28, 114.16, 0, 4.0), // Central
		testPlace("kowloon", 22.32, 114.17, 0, 4.5), // Mong Kok, across the harbour
	}
	st := filters.State{Country: "hk", City: "hk-island", District: catalog.AllDistricts}

	filtered := filterResults(results, city, st)
	if len(filtered) != 1 || filtered[0].PlaceID != "island" {
		t.Errorf("expected only the island place, got %v", ids(filtered))
	}
}

func TestFilterResultsRadius(t *testing.T) {
	city := catalog.CityByID("tokyo")
	if city == nil || city.Bounds != nil {
		t.Fatal("tokyo must use a radius, not bounds")
	}
	results := []*Place{
		testPlace("near", city.Lat+0.01, city.Lng, 0, 4.0),
		testPlace("osaka", 34.69, 135.5, 0, 4.8), // ~400km away
	}
	st := filters.State{Country: "jp", City: "tokyo", District: catalog.AllDistricts}

	filtered := filterResults(results, city, st)
	if len(filtered) != 1 || filtered[0].PlaceID != "near" {
		t.Errorf("expected only the nearby place, got %v", ids(filtered))
	}
	if filtered[0].Distance <= 0 {
		t.Error("distance from city centre should be set")
	}
}

func TestFilterResultsPriceExactMatch(t *testing.T) {
	city := catalog.CityByID("tokyo")
	results := []*Place{
		testPlace("cheap", city.Lat, city.Lng, 1, 4.0),
		testPlace("mid", city.Lat, city.Lng, 2, 4.0),
		testPlace("fancy", city.Lat, city.Lng, 3, 4.0),
	}
	st := filters.State{Country: "jp", City: "tokyo", District: catalog.AllDistricts, PriceLevel: 2}

	filtered := filterResults(results, city, st)
	if len(filtered) != 1 || filtered[0].PlaceID != "mid" {
		t.Errorf("price filter must be an exact tier match, got %v", ids(filtered))
	}
}

func TestFilterResultsMinRating(t *testing.T) {
	city := catalog.CityByID("tokyo")
	results := []*Place{
		testPlace("low", city.Lat, city.Lng, 0, 3.2),
		testPlace("high", city.Lat, city.Lng, 0, 4.6),
	}
	st := filters.State{Country: "jp", City: "tokyo", District: catalog.AllDistricts, MinRating: 4.0}

	filtered := filterResults(results, city, st)
	if len(filtered) != 1 || filtered[0].PlaceID != "high" {
		t.Errorf("expected only the highly rated place, got %v", ids(filtered))
	}
}

func TestFilterResultsCapPreservesOrder(t *testing.T) {
	city := catalog.CityByID("tokyo")
	var results []*Place
	for i := 0; i < 25; i++ {
		results = append(results, testPlace(fmt.Sprintf("p%02d", i), city.Lat, city.Lng, 0, 4.0))
	}
	st := filters.State{Country: "jp", City: "tokyo", District: catalog.AllDistricts}

	filtered := filterResults(results, city, st)
	if len(filtered) != maxResults {
		t.Fatalf("expected %d results, got %d", maxResults, len(filtered))
	}
	for i, p := range filtered {
		if p.PlaceID != fmt.Sprintf("p%02d", i) {
			t.Errorf("provider order not preserved at %d: %s", i, p.PlaceID)
		}
	}
}

func ids(places []*Place) []string {
	var out []string
	for _, p := range places {
		out = append(out, p.PlaceID)
	}
	return out
}

// fakeProvider serves canned textsearch responses.
func fakeProvider(t *testing.T, results []map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "OK",
			"results": results,
		})
	}))
}

func providerResult(id, name string, lat, lng float64) map[string]interface{} {
	return map[string]interface{}{
		"place_id":          id,
		"name":              name,
		"formatted_address": "1 Some Street",
		"rating":            4.2,
		"geometry": map[string]interface{}{
			"location": map[string]float64{"lat": lat, "lng": lng},
		},
	}
}

func TestSearchNotConfigured(t *testing.T) {
	c := NewClient("")
	if _, err := c.Search("ramen", filters.Default(), catalog.En); err != ErrNotConfigured {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSearchFiltersAndReturns(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	city := catalog.CityByID("hk-island")
	srv := fakeProvider(t, []map[string]interface{}{
		providerResult("a", "Island Noodles", city.Lat, city.Lng),
		providerResult("b", "Harbour View", 22.32, 114.17), // Kowloon side
	})
	defer srv.Close()
	defer func(old string) { googlePlacesBaseURL = old }(googlePlacesBaseURL)
	googlePlacesBaseURL = srv.URL

	c := NewClient("test-key")
	results, err := c.Search("noodles", filters.Default(), catalog.Zh)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].PlaceID != "a" {
		t.Errorf("expected the geofence to drop the cross-harbour place, got %v", ids(results))
	}
}

func TestSearchZeroResultsIsEmptyList(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ZERO_RESULTS", "results": []interface{}{}})
	}))
	defer srv.Close()
	defer func(old string) { googlePlacesBaseURL = old }(googlePlacesBaseURL)
	googlePlacesBaseURL = srv.URL

	c := NewClient("test-key")
	results, err := c.Search("xyzzy", filters.Default(), catalog.En)
	if err != nil {
		t.Fatalf("zero results must not be an error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty list, got %v", ids(results))
	}
}

func TestSearchFallbackAppliesFilters(t *testing.T) {
	resetPlacesDB(t)
	initIndex()
	city := catalog.CityByID("hk-island")
	insertIndex([]*Place{
		{PlaceID: "cheap", Name: "Noodle Stand", Address: "Wellington St", Lat: city.Lat, Lng: city.Lng, PriceLevel: 1, Rating: 3.0},
		{PlaceID: "fancy", Name: "Noodle House", Address: "Queen's Rd", Lat: city.Lat, Lng: city.Lng, PriceLevel: 3, Rating: 4.7},
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	defer func(old string) { googlePlacesBaseURL = old }(googlePlacesBaseURL)
	googlePlacesBaseURL = srv.URL

	st := filters.Default()
	st.PriceLevel = 3
	st.MinRating = 4.5

	c := NewClient("test-key")
	results, err := c.Search("noodle", st, catalog.En)
	if err != nil {
		t.Fatalf("expected fallback results, got error %v", err)
	}
	if len(results) != 1 || results[0].PlaceID != "fancy" {
		t.Errorf("fallback must honour price and rating filters, got %v", ids(results))
	}
}

func TestSearchCachesResults(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	calls := 0
	city := catalog.CityByID("hk-island")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "OK",
			"results": []map[string]interface{}{providerResult("a", "Island Noodles", city.Lat, city.Lng)},
		})
	}))
	defer srv.Close()
	defer func(old string) { googlePlacesBaseURL = old }(googlePlacesBaseURL)
	googlePlacesBaseURL = srv.URL

	c := NewClient("test-key")
	if _, err := c.Search("cached query", filters.Default(), catalog.En); err != nil {
		t.Fatalf("first search: %v", err)
	}
	if _, err := c.Search("cached query", filters.Default(), catalog.En); err != nil {
		t.Fatalf("second search: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 provider call, got %d", calls)
	}
}
