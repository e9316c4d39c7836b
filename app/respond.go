package app

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Response is a page to render in the app shell.
type Response struct {
	Title       string
	Description string
	Lang        string // html lang attribute, defaults to "en"
	HTML        string
}

// WantsJSON reports whether the client asked for a JSON response.
func WantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json")
}

// SendsJSON reports whether the client posted a JSON body.
func SendsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

// Respond renders a page in the app shell.
func Respond(w http.ResponseWriter, r *http.Request, res Response) {
	lang := res.Lang
	if lang == "" {
		lang = "en"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(RenderHTML(lang, res.Title, res.Description, res.HTML)))
}

// RespondJSON writes v as a JSON response.
func RespondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// RespondError writes a JSON error with the given status code.
func RespondError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// BadRequest responds with a 400 in the format the client asked for.
func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	if WantsJSON(r) || SendsJSON(r) {
		RespondError(w, http.StatusBadRequest, msg)
		return
	}
	w.WriteHeader(http.StatusBadRequest)
	Respond(w, r, Response{Title: "Error", HTML: `<p class="text-error">` + msg + `</p>`})
}

// ServerError responds with a 500 in the format the client asked for.
func ServerError(w http.ResponseWriter, r *http.Request, msg string) {
	if WantsJSON(r) || SendsJSON(r) {
		RespondError(w, http.StatusInternalServerError, msg)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	Respond(w, r, Response{Title: "Error", HTML: `<p class="text-error">` + msg + `</p>`})
}

// NotFound responds with a 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	if WantsJSON(r) {
		RespondError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNotFound)
	Respond(w, r, Response{Title: "Not Found", HTML: `<p class="empty">Page not found</p>`})
}

// MethodNotAllowed responds with a 405.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if WantsJSON(r) {
		RespondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}
