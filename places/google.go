package places

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chow/app"
	"chow/catalog"
)

var googlePlacesBaseURL = "https://maps.googleapis.com/maps/api/place"

// providerLanguage maps a UI language to the provider's language code.
func providerLanguage(lang catalog.Lang) string {
	switch lang {
	case catalog.Zh:
		return "zh-TW"
	case catalog.Ja:
		return "ja"
	default:
		return "en"
	}
}

// googlePlacesResult represents a single place from the Google Places API.
type googlePlacesResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Vicinity         string   `json:"vicinity"`
	Types            []string `json:"types"`
	Rating           float64  `json:"rating,omitempty"`
	UserRatingsTotal int      `json:"user_ratings_total,omitempty"`
	PriceLevel       int      `json:"price_level,omitempty"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	OpeningHours *struct {
		OpenNow bool `json:"open_now"`
	} `json:"opening_hours,omitempty"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos,omitempty"`
	Website              string `json:"website,omitempty"`
	FormattedPhoneNumber string `json:"formatted_phone_number,omitempty"`
	URL                  string `json:"url,omitempty"`
}

type googlePlacesResponse struct {
	Results      []googlePlacesResult `json:"results"`
	Result       *googlePlacesResult  `json:"result"`
	Status       string               `json:"status"`
	ErrorMessage string               `json:"error_message,omitempty"`
}

// textSearch searches for restaurants matching a query near a location.
func (c *Client) textSearch(query string, lat, lng float64, radiusM int, openNow bool, lang catalog.Lang) ([]*Place, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", fmt.Sprintf("%d", radiusM))
	params.Set("type", "restaurant")
	params.Set("language", providerLanguage(lang))
	if openNow {
		params.Set("opennow", "true")
	}
	params.Set("key", c.key)

	apiURL := googlePlacesBaseURL + "/textsearch/json?" + params.Encode()

	gResp, err := c.do(apiURL)
	if err != nil {
		return nil, err
	}

	places := make([]*Place, 0, len(gResp.Results))
	for _, r := range gResp.Results {
		p := c.parseResult(r)
		if p == nil {
			continue
		}
		places = append(places, p)
	}
	return places, nil
}

// placeDetails fetches extended fields for a single place id.
// Returns nil, nil when the provider cannot resolve the id.
func (c *Client) placeDetails(placeID string, lang catalog.Lang) (*Place, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", strings.Join([]string{
		"place_id", "name", "formatted_address", "rating", "user_ratings_total",
		"price_level", "photo", "geometry", "opening_hours", "type",
		"website", "formatted_phone_number", "url",
	}, ","))
	params.Set("language", providerLanguage(lang))
	params.Set("key", c.key)

	apiURL := googlePlacesBaseURL + "/details/json?" + params.Encode()

	gResp, err := c.do(apiURL)
	if err != nil {
		return nil, err
	}
	if gResp.Status == "NOT_FOUND" || gResp.Status == "INVALID_REQUEST" || gResp.Result == nil {
		return nil, nil
	}
	return c.parseResult(*gResp.Result), nil
}

// do executes a Google Places API GET request and checks the provider status.
func (c *Client) do(apiURL string) (*googlePlacesResponse, error) {
	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	app.RecordAPICall("places", "GET", redactKey(apiURL), statusCode(resp), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("google places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google places returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var gResp googlePlacesResponse
	if err := json.Unmarshal(body, &gResp); err != nil {
		return nil, err
	}

	switch gResp.Status {
	case "OK", "ZERO_RESULTS", "NOT_FOUND", "INVALID_REQUEST":
	default:
		return nil, fmt.Errorf("google places API error: %s %s", gResp.Status, gResp.ErrorMessage)
	}
	return &gResp, nil
}

// parseResult converts a Google Places API result into a Place.
func (c *Client) parseResult(r googlePlacesResult) *Place {
	if r.PlaceID == "" || r.Name == "" {
		return nil
	}
	lat := r.Geometry.Location.Lat
	lng := r.Geometry.Location.Lng
	if lat == 0 && lng == 0 {
		return nil
	}

	addr := r.FormattedAddress
	if addr == "" {
		addr = r.Vicinity
	}

	p := &Place{
		PlaceID:          r.PlaceID,
		Name:             r.Name,
		Address:          addr,
		Rating:           r.Rating,
		UserRatingsTotal: r.UserRatingsTotal,
		PriceLevel:       r.PriceLevel,
		Lat:              lat,
		Lng:              lng,
		Types:            r.Types,
		Website:          r.Website,
		Phone:            r.FormattedPhoneNumber,
		MapsURL:          r.URL,
	}
	if r.OpeningHours != nil {
		open := r.OpeningHours.OpenNow
		p.OpenNow = &open
	}
	if len(r.Photos) > 0 && r.Photos[0].PhotoReference != "" {
		p.PhotoURL = fmt.Sprintf("%s/photo?maxwidth=400&photoreference=%s&key=%s",
			googlePlacesBaseURL, url.QueryEscape(r.Photos[0].PhotoReference), url.QueryEscape(c.key))
	}
	if p.MapsURL == "" {
		p.MapsURL = "https://www.google.com/maps/search/?api=1&query=" +
			url.QueryEscape(p.Name) + "&query_place_id=" + url.QueryEscape(p.PlaceID)
	}
	return p
}

// redactKey strips the API key from a URL before it is logged.
func redactKey(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil {
		return apiURL
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
