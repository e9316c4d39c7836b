package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"
)

var startTime = time.Now()

// StatusCheck represents a single status check result
type StatusCheck struct {
	Name    string `json:"name"`
	Status  bool   `json:"status"`
	Details string `json:"details,omitempty"`
}

// MemoryStatus represents memory usage
type MemoryStatus struct {
	Alloc      uint64 `json:"alloc_mb"`
	Sys        uint64 `json:"sys_mb"`
	NumGC      uint32 `json:"num_gc"`
	Goroutines int    `json:"goroutines"`
}

// StatusResponse represents the full status response
type StatusResponse struct {
	Healthy   bool          `json:"healthy"`
	Uptime    string        `json:"uptime"`
	GoVersion string        `json:"go_version"`
	Memory    MemoryStatus  `json:"memory"`
	Config    []StatusCheck `json:"config"`
	APILog    int           `json:"api_log_entries"`
}

// IndexStatsFunc is injected by the places package to avoid an import cycle.
var IndexStatsFunc func() (indexed int, cached int)

// knownEnvVars lists the environment variables the application may use.
// Values are never shown; only whether each variable is set.
var knownEnvVars = []string{
	"GOOGLE_PLACES_API_KEY",
	"GEMINI_API_KEY",
	"GEMINI_MODELS",
	"DATA_DIR",
}

func buildStatus() StatusResponse {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var config []StatusCheck
	for _, name := range knownEnvVars {
		config = append(config, StatusCheck{
			Name:   name,
			Status: os.Getenv(name) != "",
		})
	}

	return StatusResponse{
		Healthy:   true,
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		GoVersion: runtime.Version(),
		Memory: MemoryStatus{
			Alloc:      m.Alloc / 1024 / 1024,
			Sys:        m.Sys / 1024 / 1024,
			NumGC:      m.NumGC,
			Goroutines: runtime.NumGoroutine(),
		},
		Config: config,
		APILog: len(GetAPILog()),
	}
}

// StatusHandler handles the /status endpoint
func StatusHandler(w http.ResponseWriter, r *http.Request) {
	status := buildStatus()

	if r.URL.Query().Get("quick") == "1" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"healthy": status.Healthy})
		return
	}

	if WantsJSON(r) {
		RespondJSON(w, status)
		return
	}

	var content strings.Builder
	content.WriteString(`<div class="card"><h3>Status</h3>`)
	content.WriteString(fmt.Sprintf(`<p>Uptime: %s · %s · %dMB alloc · %d goroutines</p>`,
		status.Uptime, status.GoVersion, status.Memory.Alloc, status.Memory.Goroutines))
	content.WriteString(`</div><div class="card"><h3>Config</h3><table class="admin-table">`)
	for _, c := range status.Config {
		mark := "✗"
		if c.Status {
			mark = "✓"
		}
		content.WriteString(fmt.Sprintf(`<tr><td>%s</td><td>%s</td></tr>`, c.Name, mark))
	}
	content.WriteString(`</table></div>`)

	if IndexStatsFunc != nil {
		indexed, cached := IndexStatsFunc()
		content.WriteString(fmt.Sprintf(
			`<div class="card"><h3>Places Index</h3><p>%d places indexed · %d searches cached</p></div>`,
			indexed, cached))
	}

	content.WriteString(`<div class="card"><h3>Recent API Calls</h3><table class="admin-table">`)
	for i, e := range GetAPILog() {
		if i >= 20 {
			break
		}
		errText := ""
		if e.Error != "" {
			errText = " · " + e.Error
		}
		content.WriteString(fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td>%d</td><td>%s%s</td></tr>`,
			e.Time.Format("15:04:05"), e.Service, e.Status, e.Duration.Round(time.Millisecond), errText))
	}
	content.WriteString(`</table></div>`)

	Respond(w, r, Response{Title: "Status", Description: "Service status", HTML: content.String()})
}
