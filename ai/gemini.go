package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chow/app"
)

var geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// generate sends a prompt through the model fallback chain. Each model is
// tried in order; network, provider and parse failures are logged and the
// next model attempted. Only after every model fails is an error returned.
// This is a linear degrade-in-capability chain, not retry-with-backoff.
func (c *Client) generate(prompt string, grounded bool) (string, []Source, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 65*time.Second)
	defer cancel()

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", nil, fmt.Errorf("request queue full")
	}
	defer c.sem.Release(1)

	var lastErr error
	for _, model := range c.models {
		text, sources, err := c.generateWithModel(model, prompt, grounded)
		if err != nil {
			app.Log("ai", "Model %s failed: %v", model, err)
			lastErr = err
			continue
		}
		return text, sources, nil
	}
	return "", nil, fmt.Errorf("all models failed: %w", lastErr)
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web,omitempty"`
				Maps *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"maps,omitempty"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata,omitempty"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// generateWithModel performs a single generateContent call.
func (c *Client) generateWithModel(model, prompt string, grounded bool) (string, []Source, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	if grounded {
		reqBody["tools"] = []map[string]interface{}{
			{"google_search": map[string]interface{}{}},
		}
	}

	body, _ := json.Marshal(reqBody)
	apiURL := fmt.Sprintf("%s/models/%s:generateContent", geminiBaseURL, model)

	httpReq, err := http.NewRequest("POST", apiURL, bytes.NewReader(body))
	if err != nil {
		return "", nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.key)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	app.RecordAPICall("gemini", "POST", apiURL, status, time.Since(start), err)
	if err != nil {
		return "", nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", nil, fmt.Errorf("gemini response parse: %w", err)
	}
	if result.Error != nil && result.Error.Message != "" {
		return "", nil, fmt.Errorf("gemini error: %s", result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}
	if len(result.Candidates) == 0 {
		return "", nil, fmt.Errorf("gemini returned no candidates")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		text += part.Text
	}

	var sources []Source
	if gm := result.Candidates[0].GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk.Maps != nil {
				sources = append(sources, Source{Title: chunk.Maps.Title, URL: chunk.Maps.URI})
			} else if chunk.Web != nil {
				sources = append(sources, Source{Title: chunk.Web.Title, URL: chunk.Web.URI})
			}
		}
	}
	return text, sources, nil
}

func jsonUnmarshal(s string, v interface{}) error {
	return json.Unmarshal([]byte(s), v)
}
