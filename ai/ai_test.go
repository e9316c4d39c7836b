package ai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chow/catalog"
)

// fakeGemini stands in for the generateContent endpoint. The handler gets
// the model name parsed out of the request path.
func fakeGemini(t *testing.T, handler func(model string, w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Path is /v1beta/models/<model>:generateContent
		parts := strings.Split(r.URL.Path, "/")
		model := strings.TrimSuffix(parts[len(parts)-1], ":generateContent")
		handler(model, w, r)
	}))
}

func textResponse(text string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return string(b)
}

func TestSummarizeCapsLists(t *testing.T) {
	srv := fakeGemini(t, func(model string, w http.ResponseWriter, r *http.Request) {
		summary := map[string][]string{
			"highlights":    {"h1", "h2", "h3", "h4"},
			"disadvantages": {"d1", "d2", "d3"},
			"popularDishes": {"p1"},
		}
		b, _ := json.Marshal(summary)
		fmt.Fprint(w, textResponse(string(b)))
	})
	defer srv.Close()
	defer func(old string) { geminiBaseURL = old }(geminiBaseURL)
	geminiBaseURL = srv.URL

	c := NewClient("test-key", nil)
	summary, err := c.Summarize("Test Cafe", "1 Test Street", catalog.En)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(summary.Highlights) != 3 {
		t.Errorf("expected 3 highlights, got %d", len(summary.Highlights))
	}
	if len(summary.Disadvantages) != 2 {
		t.Errorf("expected 2 disadvantages, got %d", len(summary.Disadvantages))
	}
	if len(summary.PopularDishes) != 1 {
		t.Errorf("expected 1 popular dish, got %d", len(summary.PopularDishes))
	}
}

func TestSummarizeNoJSONIsEmptySummary(t *testing.T) {
	srv := fakeGemini(t, func(model string, w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, textResponse("I have no information about this restaurant."))
	})
	defer srv.Close()
	defer func(old string) { geminiBaseURL = old }(geminiBaseURL)
	geminiBaseURL = srv.URL

	c := NewClient("test-key", nil)
	summary, err := c.Summarize("Unknown Place", "", catalog.En)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Highlights == nil || summary.Disadvantages == nil || summary.PopularDishes == nil {
		t.Error("expected empty lists, got nil")
	}
	if len(summary.Highlights) != 0 {
		t.Errorf("expected no highlights, got %v", summary.Highlights)
	}
}

func TestModelFallback(t *testing.T) {
	var tried []string
	srv := fakeGemini(t, func(model string, w http.ResponseWriter, r *http.Request) {
		tried = append(tried, model)
		if model == "model-a" {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error": {"message": "overloaded"}}`)
			return
		}
		fmt.Fprint(w, textResponse(`{"highlights": ["ok"], "disadvantages": [], "popularDishes": []}`))
	})
	defer srv.Close()
	defer func(old string) { geminiBaseURL = old }(geminiBaseURL)
	geminiBaseURL = srv.URL

	c := NewClient("test-key", []string{"model-a", "model-b"})
	summary, err := c.Summarize("Test Cafe", "1 Test Street", catalog.En)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(tried) != 2 || tried[0] != "model-a" || tried[1] != "model-b" {
		t.Errorf("expected fallback order [model-a model-b], got %v", tried)
	}
	if len(summary.Highlights) != 1 || summary.Highlights[0] != "ok" {
		t.Errorf("unexpected summary from fallback model: %+v", summary)
	}
}

func TestAllModelsFail(t *testing.T) {
	srv := fakeGemini(t, func(model string, w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": {"message": "boom"}}`)
	})
	defer srv.Close()
	defer func(old string) { geminiBaseURL = old }(geminiBaseURL)
	geminiBaseURL = srv.URL

	c := NewClient("test-key", []string{"model-a", "model-b"})
	_, err := c.Summarize("Test Cafe", "1 Test Street", catalog.Zh)
	if err == nil {
		t.Fatal("expected error when every model fails")
	}
	if !strings.Contains(err.Error(), Message(catalog.Zh).SummaryError) {
		t.Errorf("expected localized error message, got %v", err)
	}
}

func TestRecommendParsesSourcesAndCaps(t *testing.T) {
	srv := fakeGemini(t, func(model string, w http.ResponseWriter, r *http.Request) {
		var recs []map[string]string
		for i := 0; i < 12; i++ {
			recs = append(recs, map[string]string{
				"name":    fmt.Sprintf("Restaurant %d", i),
				"address": "somewhere",
				"reason":  "good",
			})
		}
		inner, _ := json.Marshal(map[string]interface{}{"recommendations": recs})
		b, _ := json.Marshal(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]string{{"text": string(inner)}},
					},
					"groundingMetadata": map[string]interface{}{
						"groundingChunks": []map[string]interface{}{
							{"web": map[string]string{"uri": "https://example.com/guide", "title": "Dining Guide"}},
						},
					},
				},
			},
		})
		w.Write(b)
	})
	defer srv.Close()
	defer func(old string) { geminiBaseURL = old }(geminiBaseURL)
	geminiBaseURL = srv.URL

	c := NewClient("test-key", nil)
	recs, sources, err := c.Recommend("ramen", "Shinjuku, Tokyo", catalog.Ja)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 10 {
		t.Errorf("expected recommendations capped at 10, got %d", len(recs))
	}
	if len(sources) != 1 || sources[0].URL != "https://example.com/guide" {
		t.Errorf("unexpected sources: %+v", sources)
	}
}

func TestNotConfigured(t *testing.T) {
	c := NewClient("", nil)
	if c.Ready() {
		t.Error("client without key should not be ready")
	}
	if _, err := c.Summarize("x", "y", catalog.En); err != ErrNotConfigured {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
	if _, _, err := c.Recommend("x", "y", catalog.En); err != ErrNotConfigured {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
