// internal/workers/menu/search-menu-items/query.go
package searchmenuitems

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	DefaultIndex    = "menu_items"
	defaultPageSize = 20
	maxPageSize     = 100
)

// page clamps the requested window. A missing or non-positive size falls back
// to the default; anything above maxPageSize is capped.
func page(p *Pagination) (from, size int) {
	from, size = 0, defaultPageSize
	if p == nil {
		return from, size
	}
	if p.From > 0 {
		from = p.From
	}
	switch {
	case p.Size > maxPageSize:
		size = maxPageSize
	case p.Size >= 1:
		size = p.Size
	}
	return from, size
}

func buildQuery(input *Input) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if input.Keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  input.Keywords,
				"fields": []string{"name^3", "description^2", "category"},
				"type":   "best_fields",
			},
		})
	}

	if input.Category != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"category": input.Category},
		})
	}
	if input.SessionID != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"session_ids": input.SessionID},
		})
	}

	flags := []struct {
		field string
		value *bool
	}{
		{"vegetarian", input.Vegetarian},
		{"gluten_free", input.GlutenFree},
		{"dairy_free", input.DairyFree},
		{"popular", input.Popular},
	}
	for _, f := range flags {
		if f.value != nil {
			filterClauses = append(filterClauses, map[string]interface{}{
				"term": map[string]interface{}{f.field: *f.value},
			})
		}
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}

	switch input.SortBy {
	case "name":
		query["sort"] = []map[string]interface{}{{"name.raw": "asc"}}
	case "price":
		query["sort"] = []map[string]interface{}{{"price": "asc"}}
	case "price_desc":
		query["sort"] = []map[string]interface{}{{"price": "desc"}}
	}

	return query
}

func buildRequest(index string, input *Input) (*esapi.SearchRequest, error) {
	body, err := json.Marshal(buildQuery(input))
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	from, size := page(input.Pagination)

	return &esapi.SearchRequest{
		Index:          []string{index},
		Body:           bytes.NewReader(body),
		From:           &from,
		Size:           &size,
		TrackTotalHits: true,
	}, nil
}
