package places

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"

	"chow/app"
	"chow/catalog"
	"chow/filters"
)

// DefaultClient is the client constructed at startup and used by the HTTP
// handlers. Injected from main so tests can swap it.
var DefaultClient *Client

type searchRequest struct {
	Query string        `json:"query"`
	State filters.State `json:"state"`
	Lang  string        `json:"lang"`
}

// SearchHandler executes a place search. POST /search
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, r)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.BadRequest(w, r, "invalid search request")
		return
	}
	lang := catalog.ParseLang(req.Lang)

	results, err := DefaultClient.Search(req.Query, req.State, lang)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			// Configuration errors are persistent and not retryable; the UI
			// renders them inline rather than as a banner.
			app.RespondJSON(w, map[string]interface{}{
				"configError": Message(lang).NoKey,
				"results":     []*Place{},
			})
			return
		}
		app.Log("places", "Search error: %v", err)
		app.RespondError(w, http.StatusBadGateway, Message(lang).SearchError)
		return
	}

	app.RespondJSON(w, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

// DetailHandler fetches extended fields for one place. GET /place?id=
func DetailHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, r)
		return
	}

	placeID := r.URL.Query().Get("id")
	if placeID == "" {
		app.BadRequest(w, r, "place id required")
		return
	}
	lang := catalog.ParseLang(r.URL.Query().Get("lang"))

	place, err := DefaultClient.GetDetails(placeID, lang)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			app.RespondError(w, http.StatusServiceUnavailable, Message(lang).NoKey)
			return
		}
		app.Log("places", "Details error for %s: %v", placeID, err)
		app.RespondError(w, http.StatusBadGateway, Message(lang).SearchError)
		return
	}
	if place == nil {
		// A stale id is not an error; the client keeps what it already has.
		app.RespondJSON(w, map[string]interface{}{"place": nil})
		return
	}

	app.RespondJSON(w, map[string]interface{}{"place": place})
}

// QRHandler renders a place's Google Maps URL as a QR code PNG.
// GET /place/qr?url=
func QRHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	u, err := url.Parse(raw)
	if err != nil || u.Host != "www.google.com" && u.Host != "maps.google.com" && u.Host != "maps.app.goo.gl" {
		app.BadRequest(w, r, "invalid maps url")
		return
	}

	png, err := qrcode.Encode(u.String(), qrcode.Medium, 240)
	if err != nil {
		app.ServerError(w, r, "qr encoding failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(png)
}
