package places

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// websitePreview fetches a restaurant's website and extracts its title and
// meta description for the detail panel. Best effort only: callers absorb
// the error and continue with the data they already have.
func websitePreview(client *http.Client, siteURL string) (title, desc string, err error) {
	req, err := http.NewRequest("GET", siteURL, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("website returned status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		return "", "", fmt.Errorf("unexpected content type %q", ct)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", "", err
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		desc = strings.TrimSpace(og)
	} else if meta, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		desc = strings.TrimSpace(meta)
	}
	if len(desc) > 200 {
		desc = desc[:200] + "..."
	}
	return title, desc, nil
}
