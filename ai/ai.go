// Package ai generates restaurant recommendations and review summaries with
// the Gemini API. Prompts ask for a strict JSON shape; responses are parsed
// leniently and every list is capped. An ordered chain of model identifiers
// provides the fallback policy: each failure moves to the next model and only
// exhausting the chain surfaces an error.
package ai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/template"
	"time"

	"golang.org/x/sync/semaphore"

	"chow/catalog"
)

// List caps for a review summary.
const (
	maxHighlights      = 3
	maxDisadvantages   = 2
	maxDishes          = 3
	maxRecommendations = 10
)

// ReviewSummary is an AI-generated digest of a restaurant's reviews.
type ReviewSummary struct {
	Highlights    []string `json:"highlights"`
	Disadvantages []string `json:"disadvantages"`
	PopularDishes []string `json:"popularDishes"`
}

// Recommendation is a single AI-suggested restaurant.
type Recommendation struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Reason  string `json:"reason"`
}

// Source is a grounding citation returned alongside a recommendation.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ErrNotConfigured is returned when no Gemini API key is set.
var ErrNotConfigured = errors.New("ai: GEMINI_API_KEY not set")

// DefaultModels is the fallback chain tried in order. Later entries trade
// capability for availability.
var DefaultModels = []string{"gemini-2.5-flash", "gemini-2.0-flash", "gemini-1.5-flash"}

// Client calls the Gemini API with a model fallback chain.
type Client struct {
	key    string
	models []string
	http   *http.Client
	// Limit concurrent requests to prevent memory bloat
	sem *semaphore.Weighted
}

// NewClient returns an AI client. An empty models list uses DefaultModels.
func NewClient(key string, models []string) *Client {
	if len(models) == 0 {
		models = DefaultModels
	}
	return &Client{
		key:    key,
		models: models,
		http:   &http.Client{Timeout: 60 * time.Second},
		sem:    semaphore.NewWeighted(5),
	}
}

// Ready reports whether the client has an API key configured.
func (c *Client) Ready() bool {
	return c != nil && c.key != ""
}

// languageName spells out the response language for the prompt.
func languageName(lang catalog.Lang) string {
	switch lang {
	case catalog.Zh:
		return "Cantonese (廣東話)"
	case catalog.Ja:
		return "Japanese (日本語)"
	default:
		return "English"
	}
}

var summaryPrompt = template.Must(template.New("summary_prompt").Parse(`
You are a restaurant review analyst. Summarise real, searchable diner reviews of the restaurant "{{.Name}}" located at "{{.Address}}".

Ground every statement in real, verifiable information about this specific restaurant. Do not invent reviews. If you know nothing about it, return empty lists.

Respond in {{.Language}}.

Respond ONLY with a single JSON object in exactly this shape, with no surrounding prose:
{"highlights": ["..."], "disadvantages": ["..."], "popularDishes": ["..."]}

Limits: at most 3 highlights, 2 disadvantages, 3 popular dishes.
`))

var recommendPrompt = template.Must(template.New("recommend_prompt").Parse(`
You are a local dining guide. Recommend restaurants matching this request:

Keywords: {{.Query}}
Area: {{.Location}}

Only recommend real restaurants that exist and can be found on a map in that area. Do not invent names or addresses.

Respond in {{.Language}}.

Respond ONLY with a single JSON object in exactly this shape, with no surrounding prose:
{"recommendations": [{"name": "...", "address": "...", "reason": "..."}]}

Limit: at most 10 recommendations.
`))

// Summarize generates a review summary for one restaurant. The lists are
// capped even when the model returns more, and a response with no JSON
// object yields an empty but valid summary.
func (c *Client) Summarize(name, address string, lang catalog.Lang) (*ReviewSummary, error) {
	if !c.Ready() {
		return nil, ErrNotConfigured
	}

	sb := &strings.Builder{}
	if err := summaryPrompt.Execute(sb, map[string]string{
		"Name": name, "Address": address, "Language": languageName(lang),
	}); err != nil {
		return nil, err
	}

	text, _, err := c.generate(sb.String(), false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Message(lang).SummaryError, err)
	}

	var summary ReviewSummary
	if obj := ExtractJSON(text); obj != "" {
		// Lenient: a malformed object is treated the same as no object.
		_ = jsonUnmarshal(obj, &summary)
	}
	summary.Highlights = capList(summary.Highlights, maxHighlights)
	summary.Disadvantages = capList(summary.Disadvantages, maxDisadvantages)
	summary.PopularDishes = capList(summary.PopularDishes, maxDishes)
	return &summary, nil
}

// Recommend generates up to 10 restaurant suggestions for a query and
// location context, with any grounding citations as alternate sources.
func (c *Client) Recommend(query, location string, lang catalog.Lang) ([]Recommendation, []Source, error) {
	if !c.Ready() {
		return nil, nil, ErrNotConfigured
	}
	if strings.TrimSpace(query) == "" {
		query = "popular restaurants"
	}

	sb := &strings.Builder{}
	if err := recommendPrompt.Execute(sb, map[string]string{
		"Query": query, "Location": location, "Language": languageName(lang),
	}); err != nil {
		return nil, nil, err
	}

	text, sources, err := c.generate(sb.String(), true)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", Message(lang).RecommendError, err)
	}

	var parsed struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	if obj := ExtractJSON(text); obj != "" {
		_ = jsonUnmarshal(obj, &parsed)
	}
	if len(parsed.Recommendations) > maxRecommendations {
		parsed.Recommendations = parsed.Recommendations[:maxRecommendations]
	}
	return parsed.Recommendations, sources, nil
}

func capList(list []string, max int) []string {
	if list == nil {
		return []string{}
	}
	if len(list) > max {
		return list[:max]
	}
	return list
}
