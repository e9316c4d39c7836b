// Package api documents the JSON endpoints and renders the docs page.
package api

import (
	"fmt"
)

type Endpoint struct {
	Name        string
	Path        string
	Method      string
	Params      []*Param
	Response    []*Value
	Description string
}

type Param struct {
	Name        string
	Value       string
	Description string
}

type Value struct {
	Type   string
	Params []*Param
}

var Endpoints = []*Endpoint{{
	Name:        "Filters",
	Path:        "/filters",
	Method:      "POST",
	Description: "Apply one change event to a filter state and get the next state back",
	Params: []*Param{
		{
			Name:        "state",
			Value:       "object",
			Description: "Current filter state as returned by a previous call",
		},
		{
			Name:        "event",
			Value:       "object",
			Description: "Change to apply; {'key': 'city', 'value': 'kowloon'}",
		},
		{
			Name:        "clear",
			Value:       "bool",
			Description: "Reset every filter to the defaults, ignoring the event",
		},
	},
	Response: []*Value{
		{
			Type: "JSON",
			Params: []*Param{
				{
					Name:        "state",
					Value:       "object",
					Description: "The filter state after the event",
				},
				{
					Name:        "stale",
					Value:       "bool",
					Description: "Whether previously fetched results no longer match the state",
				},
			},
		},
	},
}, {
	Name:        "Search",
	Path:        "/search",
	Method:      "POST",
	Description: "Search for restaurants matching a query and filter state",
	Params: []*Param{
		{
			Name:        "query",
			Value:       "string",
			Description: "Free text keywords, may be empty",
		},
		{
			Name:        "state",
			Value:       "object",
			Description: "Filter state from /filters",
		},
		{
			Name:        "lang",
			Value:       "string",
			Description: "UI language; zh, en or ja",
		},
	},
	Response: []*Value{
		{
			Type: "JSON",
			Params: []*Param{
				{
					Name:        "results",
					Value:       "array",
					Description: "Up to 15 places with name, address, rating, coordinates",
				},
				{
					Name:        "count",
					Value:       "int",
					Description: "Number of results",
				},
			},
		},
	},
}, {
	Name:        "Place",
	Path:        "/place",
	Method:      "GET",
	Description: "Fetch extended details for one place",
	Params: []*Param{
		{
			Name:        "id",
			Value:       "string",
			Description: "Place id from a search result",
		},
		{
			Name:        "lang",
			Value:       "string",
			Description: "UI language; zh, en or ja",
		},
	},
	Response: []*Value{
		{
			Type: "JSON",
			Params: []*Param{
				{
					Name:        "place",
					Value:       "object",
					Description: "Place with website, phone and maps link; null when the id is stale",
				},
			},
		},
	},
}, {
	Name:        "Summary",
	Path:        "/summary",
	Method:      "POST",
	Description: "Generate an AI review summary for one restaurant",
	Params: []*Param{
		{
			Name:        "name",
			Value:       "string",
			Description: "Restaurant name",
		},
		{
			Name:        "address",
			Value:       "string",
			Description: "Restaurant address",
		},
		{
			Name:        "lang",
			Value:       "string",
			Description: "UI language; zh, en or ja",
		},
	},
	Response: []*Value{
		{
			Type: "JSON",
			Params: []*Param{
				{
					Name:        "summary",
					Value:       "object",
					Description: "highlights (max 3), disadvantages (max 2), popularDishes (max 3)",
				},
			},
		},
	},
}, {
	Name:        "Recommend",
	Path:        "/recommend",
	Method:      "POST",
	Description: "Generate AI restaurant recommendations for a query and area",
	Params: []*Param{
		{
			Name:        "query",
			Value:       "string",
			Description: "Free text keywords, may be empty",
		},
		{
			Name:        "location",
			Value:       "string",
			Description: "Area context such as 'Central, Hong Kong Island'",
		},
		{
			Name:        "lang",
			Value:       "string",
			Description: "UI language; zh, en or ja",
		},
	},
	Response: []*Value{
		{
			Type: "JSON",
			Params: []*Param{
				{
					Name:        "recommendations",
					Value:       "array",
					Description: "Up to 10 suggestions with name, address, reason",
				},
				{
					Name:        "sources",
					Value:       "array",
					Description: "Grounding citations with title and url",
				},
			},
		},
	},
}}

// Register an endpoint
func Register(ep *Endpoint) {
	Endpoints = append(Endpoints, ep)
}

// Markdown API document
func Markdown() string {
	var data string

	data += "# API Documentation\n\n"
	data += "All endpoints are public and exchange JSON. Pass `Accept: application/json` to any page endpoint for a JSON response.\n\n"
	data += "---\n\n"

	for _, endpoint := range Endpoints {
		data += "## " + endpoint.Name
		data += fmt.Sprintln()
		data += fmt.Sprintln()
		data += fmt.Sprintln(endpoint.Description)
		data += fmt.Sprintln()
		data += fmt.Sprintf("```%s %s```", endpoint.Method, endpoint.Path)
		data += fmt.Sprintln()

		if endpoint.Params != nil {
			data += fmt.Sprintln("#### Request")
			data += fmt.Sprintln()
			data += "| Field | Type | Description |"
			data += fmt.Sprintln()
			data += "| ----- | ---- | ----------- |"
			data += fmt.Sprintln()

			for _, param := range endpoint.Params {
				data += fmt.Sprintf("|	%s	|	%s	|	%s	|", param.Name, param.Value, param.Description)
				data += fmt.Sprintln()
			}
			data += fmt.Sprintln()
		}

		if endpoint.Response != nil {
			data += fmt.Sprintln("#### Response")
			data += fmt.Sprintln()
			for _, resp := range endpoint.Response {
				data += fmt.Sprintln()
				data += fmt.Sprintf("Format: %s", resp.Type)
				data += fmt.Sprintln()
				data += "| Field | Type | Description |"
				data += fmt.Sprintln()
				data += "| ----- | ---- | ----------- |"
				data += fmt.Sprintln()
				for _, param := range resp.Params {
					data += fmt.Sprintf("|	%s	|	%s	|	%s	|", param.Name, param.Value, param.Description)
					data += fmt.Sprintln()
				}
			}
			data += fmt.Sprintln()
		}

		data += fmt.Sprintln("---")
		data += fmt.Sprintln()
	}

	return data
}
