package home

import (
	"encoding/json"
	"strings"
	"testing"

	"chow/catalog"
)

func TestPageContainsControls(t *testing.T) {
	page := Page(catalog.En)
	for _, id := range []string{
		"f-country", "f-city", "f-district", "f-cuisine", "f-area",
		"f-rating", "f-price", "f-open", "f-wheelchair", "f-child", "f-pet",
		"search-form", "map", "result-list", "detail-body", "clear-filters", "recommend",
	} {
		if !strings.Contains(page, `id="`+id+`"`) {
			t.Errorf("page missing control %q", id)
		}
	}
}

func TestPageBootstrapIsValidJSON(t *testing.T) {
	page := Page(catalog.Zh)
	start := strings.Index(page, "var BOOT = ")
	if start < 0 {
		t.Fatal("page missing bootstrap")
	}
	raw := page[start+len("var BOOT = "):]
	raw = raw[:strings.Index(raw, ";</script>")]

	var boot bootstrap
	if err := json.Unmarshal([]byte(raw), &boot); err != nil {
		t.Fatalf("bootstrap is not valid JSON: %v", err)
	}
	if len(boot.Countries) == 0 || len(boot.Cities) == 0 || len(boot.Cuisines) == 0 {
		t.Error("bootstrap missing catalog data")
	}
	if boot.Defaults.City != "hk-island" {
		t.Errorf("unexpected default city %q", boot.Defaults.City)
	}
	if boot.Strings.SearchButton == "" {
		t.Error("bootstrap missing localized strings")
	}
}

func TestSidebarDistrictsMatchDefaultCity(t *testing.T) {
	side := sidebar(catalog.En)
	// Default city is Hong Kong Island; its districts should be options and
	// another city's districts should not.
	if !strings.Contains(side, `value="central"`) {
		t.Error("sidebar missing hk-island district")
	}
	if strings.Contains(side, `value="shinjuku"`) {
		t.Error("sidebar should not list districts of other cities")
	}
}

func TestStrsFallsBackToEnglish(t *testing.T) {
	got := strs(catalog.Lang("fr"))
	if got.SearchButton != labels[catalog.En].SearchButton {
		t.Errorf("expected english fallback, got %+v", got.SearchButton)
	}
}
