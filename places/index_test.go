package places

import (
	"sync"
	"testing"
)

func TestEncodeGeohash(t *testing.T) {
	tests := []struct {
		lat, lng  float64
		precision int
		want      string
	}{
		// London approx geohash at precision 4
		{51.5074, -0.1278, 4, "gcpv"},
		// Hong Kong approx geohash at precision 4
		{22.2819, 114.1582, 4, "wecn"},
	}
	for _, tt := range tests {
		got := encodeGeohash(tt.lat, tt.lng, tt.precision)
		if got != tt.want {
			t.Errorf("encodeGeohash(%.4f, %.4f, %d) = %q, want %q",
				tt.lat, tt.lng, tt.precision, got, tt.want)
		}
	}
}

func TestEncodeGeohashLength(t *testing.T) {
	for _, prec := range []int{1, 3, 6, 9} {
		gh := encodeGeohash(0, 0, prec)
		if len(gh) != prec {
			t.Errorf("expected geohash length %d, got %d (%s)", prec, len(gh), gh)
		}
	}
}

func TestSanitizeFTSQuery(t *testing.T) {
	tests := []struct {
		input string
		valid bool // whether result should be non-empty
	}{
		{"ramen", true},
		{"", false},
		{"   ", false},
		{`"dangerous"`, true},
		{"dim*sum cafe", true},
	}
	for _, tt := range tests {
		got := sanitizeFTSQuery(tt.input)
		if tt.valid && got == "" {
			t.Errorf("sanitizeFTSQuery(%q) returned empty, expected non-empty", tt.input)
		}
		if !tt.valid && got != "" {
			t.Errorf("sanitizeFTSQuery(%q) = %q, expected empty", tt.input, got)
		}
	}
}

func resetPlacesDB(t *testing.T) {
	t.Helper()
	t.Setenv("DATA_DIR", t.TempDir())
	placesDBOne = sync.Once{}
	placesDB = nil
}

func TestIndexAndSearchPlaces(t *testing.T) {
	resetPlacesDB(t)

	places := []*Place{
		{PlaceID: "1", Name: "Golden Noodle House", Address: "Wellington St", Types: []string{"restaurant"}, Lat: 22.2819, Lng: 114.1559},
		{PlaceID: "2", Name: "Harbour Dim Sum", Address: "Connaught Rd", Types: []string{"restaurant"}, Lat: 22.2865, Lng: 114.1601},
		{PlaceID: "3", Name: "Shinjuku Ramen", Address: "Kabukicho", Types: []string{"restaurant"}, Lat: 35.6938, Lng: 139.7034},
	}
	indexPlaces(places)

	results, err := searchPlacesFTS("noodle", 22.2819, 114.1582, 5000)
	if err != nil {
		t.Fatalf("searchPlacesFTS error: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Golden Noodle House" {
		t.Errorf("expected Golden Noodle House, got %v", ids(results))
	}

	// Distant matches are outside the geo pre-filter even when text matches
	far, err := searchPlacesFTS("ramen", 22.2819, 114.1582, 5000)
	if err != nil {
		t.Fatalf("searchPlacesFTS error: %v", err)
	}
	if len(far) != 0 {
		t.Errorf("expected no results for a Tokyo place near Hong Kong, got %v", ids(far))
	}

	// Results sorted by distance from the reference point
	all, err := searchPlacesFTS("restaurant", 22.2819, 114.1582, 5000)
	if err != nil {
		t.Fatalf("searchPlacesFTS error: %v", err)
	}
	for i := 1; i < len(all); i++ {
		if all[i].Distance < all[i-1].Distance {
			t.Errorf("results not sorted by distance at index %d", i)
		}
	}
}

func TestIndexPlacesUpdatesExisting(t *testing.T) {
	resetPlacesDB(t)

	indexPlaces([]*Place{{PlaceID: "10", Name: "Old Name", Lat: 22.28, Lng: 114.16}})
	indexPlaces([]*Place{{PlaceID: "10", Name: "New Name", Lat: 22.28, Lng: 114.16}})

	results, err := searchPlacesFTS("New Name", 22.28, 114.16, 1000)
	if err != nil {
		t.Fatalf("searchPlacesFTS error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected updated place to be findable, got %v", ids(results))
	}

	stale, err := searchPlacesFTS("Old Name", 22.28, 114.16, 1000)
	if err != nil {
		t.Fatalf("searchPlacesFTS error: %v", err)
	}
	if len(stale) != 0 {
		t.Errorf("old FTS entry should have been replaced, got %v", ids(stale))
	}
}

func TestQueryLocal(t *testing.T) {
	resetPlacesDB(t)
	initIndex()
	insertIndex([]*Place{
		{PlaceID: "near", Name: "Near", Lat: 22.2819, Lng: 114.1582},
		{PlaceID: "far", Name: "Far", Lat: 35.67, Lng: 139.65},
	})

	results := queryLocal(22.2819, 114.1582, 2000)
	if len(results) != 1 || results[0].PlaceID != "near" {
		t.Errorf("expected only the nearby place, got %v", ids(results))
	}
}
