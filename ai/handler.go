package ai

import (
	"encoding/json"
	"errors"
	"net/http"

	"chow/app"
	"chow/catalog"
)

// DefaultClient is the client constructed at startup and used by the HTTP
// handlers. Injected from main so tests can swap it.
var DefaultClient *Client

type summaryRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Lang    string `json:"lang"`
}

// SummaryHandler generates a review summary for one restaurant. POST /summary
func SummaryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, r)
		return
	}

	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.BadRequest(w, r, "invalid summary request")
		return
	}
	if req.Name == "" {
		app.BadRequest(w, r, "restaurant name required")
		return
	}
	lang := catalog.ParseLang(req.Lang)

	summary, err := DefaultClient.Summarize(req.Name, req.Address, lang)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			app.RespondJSON(w, map[string]interface{}{"configError": Message(lang).NoKey})
			return
		}
		app.Log("ai", "Summary error for %q: %v", req.Name, err)
		app.RespondError(w, http.StatusBadGateway, Message(lang).SummaryError)
		return
	}

	app.RespondJSON(w, map[string]interface{}{"summary": summary})
}

type recommendRequest struct {
	Query    string `json:"query"`
	Location string `json:"location"`
	Lang     string `json:"lang"`
}

// RecommendHandler generates restaurant suggestions. POST /recommend
func RecommendHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, r)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.BadRequest(w, r, "invalid recommend request")
		return
	}
	lang := catalog.ParseLang(req.Lang)

	recs, sources, err := DefaultClient.Recommend(req.Query, req.Location, lang)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			app.RespondJSON(w, map[string]interface{}{
				"configError":     Message(lang).NoKey,
				"recommendations": []Recommendation{},
			})
			return
		}
		app.Log("ai", "Recommend error for %q: %v", req.Query, err)
		app.RespondError(w, http.StatusBadGateway, Message(lang).RecommendError)
		return
	}
	if recs == nil {
		recs = []Recommendation{}
	}
	if sources == nil {
		sources = []Source{}
	}

	app.RespondJSON(w, map[string]interface{}{
		"recommendations": recs,
		"sources":         sources,
	})
}
