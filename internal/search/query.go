package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string // User's search query

	// Filters
	Meals      []string // Filter by meal slot (breakfast, lunch, ...)
	Difficulty string   // Filter by exact difficulty
	Cost       string   // Filter by exact cost level
	Season     string   // Filter by season membership
	Sources    []string // Document sources to include (empty = all)
	MaxCleanup int      // Maximum cleanup level (0 = no limit)

	// Pagination
	Limit  int
	Offset int

	// Options
	IncludeFacets bool     // Include facet counts in results
	FacetFields   []string // Which fields to facet on
	Highlight     bool     // Include match highlighting
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:         20,
		Offset:        0,
		IncludeFacets: true,
		FacetFields:   []string{"meal", "difficulty", "cost"},
		Highlight:     true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Facets SearchFacets `json:"facets,omitzero"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID          string            `json:"id"`
	Score       float64           `json:"score"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Meal        string            `json:"meal,omitempty"`
	Difficulty  string            `json:"difficulty,omitempty"`
	Cost        string            `json:"cost,omitempty"`
	Servings    int               `json:"servings,omitempty"`
	Highlights  map[string]string `json:"highlights,omitempty"`
}

// SearchFacets contains facet counts.
type SearchFacets struct {
	Meals        []FacetCount `json:"meals,omitempty"`
	Difficulties []FacetCount `json:"difficulties,omitempty"`
	Costs        []FacetCount `json:"costs,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *RecipeIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	if params.IncludeFacets {
		for _, field := range params.FacetFields {
			searchRequest.AddFacet(field, bleve.NewFacetRequest(field, 20))
		}
	}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
		searchRequest.Highlight.AddField("description")
	}

	searchRequest.Fields = []string{
		"id", "name", "description", "meal", "difficulty", "cost", "servings",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if n, ok := hit.Fields["name"].(string); ok {
			searchHit.Name = n
		}
		if d, ok := hit.Fields["description"].(string); ok {
			searchHit.Description = d
		}
		if m, ok := hit.Fields["meal"].(string); ok {
			searchHit.Meal = m
		}
		if d, ok := hit.Fields["difficulty"].(string); ok {
			searchHit.Difficulty = d
		}
		if c, ok := hit.Fields["cost"].(string); ok {
			searchHit.Cost = c
		}
		if sv, ok := hit.Fields["servings"].(float64); ok {
			searchHit.Servings = int(sv)
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	// Main text query across name, description, and ingredient text.
	// Name matches score highest so searching 玉ねぎ prefers recipes named
	// for the ingredient over recipes merely containing it.
	if params.Query != "" {
		textQueries := []query.Query{}

		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")
		descMatch.SetBoost(1.5)
		textQueries = append(textQueries, descMatch)

		ingredientMatch := bleve.NewMatchQuery(params.Query)
		ingredientMatch.SetField("ingredients")
		textQueries = append(textQueries, ingredientMatch)

		tipMatch := bleve.NewMatchQuery(params.Query)
		tipMatch.SetField("tip")
		tipMatch.SetBoost(0.5)
		textQueries = append(textQueries, tipMatch)

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Meal filter (OR across slots)
	if len(params.Meals) > 0 {
		mealQueries := make([]query.Query, len(params.Meals))
		for i, m := range params.Meals {
			mq := bleve.NewTermQuery(m)
			mq.SetField("meal")
			mealQueries[i] = mq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(mealQueries...))
	}

	if params.Difficulty != "" {
		dq := bleve.NewTermQuery(params.Difficulty)
		dq.SetField("difficulty")
		queries = append(queries, dq)
	}

	if params.Cost != "" {
		cq := bleve.NewTermQuery(params.Cost)
		cq.SetField("cost")
		queries = append(queries, cq)
	}

	if params.Season != "" {
		sq := bleve.NewTermQuery(params.Season)
		sq.SetField("seasons")
		queries = append(queries, sq)
	}

	if len(params.Sources) > 0 {
		sourceQueries := make([]query.Query, len(params.Sources))
		for i, src := range params.Sources {
			sq := bleve.NewTermQuery(src)
			sq.SetField("source")
			sourceQueries[i] = sq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(sourceQueries...))
	}

	// Cleanup level range filter
	if params.MaxCleanup > 0 {
		minLevel := float64(1)
		maxLevel := float64(params.MaxCleanup)
		rangeQuery := bleve.NewNumericRangeInclusiveQuery(&minLevel, &maxLevel, boolPtr(true), boolPtr(true))
		rangeQuery.SetField("cleanup_level")
		queries = append(queries, rangeQuery)
	}

	// Combine all queries with AND
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

func boolPtr(b bool) *bool { return &b }

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) SearchFacets {
	facets := SearchFacets{}

	if mealFacet, ok := result.Facets["meal"]; ok {
		for _, term := range mealFacet.Terms.Terms() {
			facets.Meals = append(facets.Meals, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if diffFacet, ok := result.Facets["difficulty"]; ok {
		for _, term := range diffFacet.Terms.Terms() {
			facets.Difficulties = append(facets.Difficulties, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if costFacet, ok := result.Facets["cost"]; ok {
		for _, term := range costFacet.Terms.Terms() {
			facets.Costs = append(facets.Costs, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	return facets
}
