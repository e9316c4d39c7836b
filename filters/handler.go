package filters

import (
	"encoding/json"
	"net/http"

	"chow/app"
)

type changeRequest struct {
	State State `json:"state"`
	Event Event `json:"event"`
	Clear bool  `json:"clear"`
}

type changeResponse struct {
	State State `json:"state"`
	Stale bool  `json:"stale"`
}

// Handler dispatches a single filter event against a posted state and
// returns the next state. POST /filters
func Handler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, r)
		return
	}

	var req changeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.BadRequest(w, r, "invalid filter request")
		return
	}

	if req.Clear {
		app.RespondJSON(w, changeResponse{State: Clear()})
		return
	}

	next, stale := Apply(req.State, req.Event)
	app.RespondJSON(w, changeResponse{State: next, Stale: stale})
}
