package app

import (
	"html"
	"strings"
)

// UI layout helpers for consistent rendering.
// Use these wrappers + chow.css classes.

// SearchBar renders a search input with search button
func SearchBar(id, placeholder, label string) string {
	var b strings.Builder
	b.WriteString(`<form class="search-bar" id="`)
	b.WriteString(id)
	b.WriteString(`"><input type="text" name="q" autocomplete="off" placeholder="`)
	b.WriteString(html.EscapeString(placeholder))
	b.WriteString(`"><button type="submit">`)
	b.WriteString(html.EscapeString(label))
	b.WriteString(`</button></form>`)
	return b.String()
}

// Grid wraps content in a card-grid container
func Grid(content string) string {
	return `<div class="card-grid">` + content + `</div>`
}

// List wraps content in a card-list container
func List(content string) string {
	return `<div class="card-list">` + content + `</div>`
}

// Empty renders an empty state message
func Empty(message string) string {
	return `<p class="empty">` + html.EscapeString(message) + `</p>`
}

// CardDiv wraps content in a card container
func CardDiv(content string) string {
	return `<div class="card">` + content + `</div>`
}

// CardDivClass wraps content in a card with additional classes
func CardDivClass(class, content string) string {
	return `<div class="card ` + class + `">` + content + `</div>`
}

// Title renders a card title with link
func Title(text, href string) string {
	if href != "" {
		return `<a href="` + href + `" class="card-title">` + html.EscapeString(text) + `</a>`
	}
	return `<span class="card-title">` + html.EscapeString(text) + `</span>`
}

// Meta renders metadata text
func Meta(content string) string {
	return `<div class="card-meta">` + content + `</div>`
}

// Desc renders description text
func Desc(text string) string {
	return `<p class="card-desc">` + html.EscapeString(text) + `</p>`
}

// Select renders a labelled select control with the given options.
// Options are value/label pairs; selected marks the active value.
func Select(id, label string, options [][2]string, selected string) string {
	var b strings.Builder
	b.WriteString(`<label class="filter-label" for="`)
	b.WriteString(id)
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(label))
	b.WriteString(`</label><select id="`)
	b.WriteString(id)
	b.WriteString(`">`)
	for _, opt := range options {
		b.WriteString(`<option value="`)
		b.WriteString(html.EscapeString(opt[0]))
		b.WriteString(`"`)
		if opt[0] == selected {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(opt[1]))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select>`)
	return b.String()
}

// Toggle renders a labelled checkbox toggle.
func Toggle(id, label string, checked bool) string {
	var b strings.Builder
	b.WriteString(`<label class="toggle"><input type="checkbox" id="`)
	b.WriteString(id)
	b.WriteString(`"`)
	if checked {
		b.WriteString(` checked`)
	}
	b.WriteString(`><span>`)
	b.WriteString(html.EscapeString(label))
	b.WriteString(`</span></label>`)
	return b.String()
}
