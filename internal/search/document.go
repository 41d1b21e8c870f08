// Package search provides full-text recipe search using Bleve.
// Library recipes and user-saved recipes share one index with source
// discrimination, filterable by meal, difficulty, cost, and season.
package search

import (
	"strings"

	"github.com/takibiapp/takibi-server/internal/domain"
)

// DocSource identifies where an indexed recipe came from.
type DocSource string

// Document sources for the search index.
const (
	DocSourceLibrary DocSource = "library"
	DocSourceSaved   DocSource = "saved"
)

// RecipeDocument is the document structure for the Bleve index.
type RecipeDocument struct {
	ID     string    `json:"id"`
	Source DocSource `json:"source"`

	// Full-text fields
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Ingredients string `json:"ingredients,omitempty"` // Joined ingredient lines
	Tip         string `json:"tip,omitempty"`

	// Keyword fields for exact filtering
	Meal       string   `json:"meal"`
	Difficulty string   `json:"difficulty,omitempty"`
	Cost       string   `json:"cost,omitempty"`
	Seasons    []string `json:"seasons,omitempty"`
	Tags       []string `json:"tags,omitempty"`

	// Numeric fields for range queries
	Servings     int `json:"servings,omitempty"`
	CleanupLevel int `json:"cleanup_level,omitempty"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *RecipeDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":     d.ID,
		"source": string(d.Source),
		"name":   d.Name,
		"meal":   d.Meal,
	}

	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Ingredients != "" {
		m["ingredients"] = d.Ingredients
	}
	if d.Tip != "" {
		m["tip"] = d.Tip
	}
	if d.Difficulty != "" {
		m["difficulty"] = d.Difficulty
	}
	if d.Cost != "" {
		m["cost"] = d.Cost
	}
	if len(d.Seasons) > 0 {
		m["seasons"] = d.Seasons
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if d.Servings > 0 {
		m["servings"] = d.Servings
	}
	if d.CleanupLevel > 0 {
		m["cleanup_level"] = d.CleanupLevel
	}

	return m
}

// RecipeToDocument converts a domain Recipe to a RecipeDocument.
func RecipeToDocument(source DocSource, id string, r *domain.Recipe) *RecipeDocument {
	return &RecipeDocument{
		ID:           id,
		Source:       source,
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  strings.Join(r.Ingredients, " "),
		Tip:          r.Tip,
		Meal:         string(r.Meal),
		Difficulty:   string(r.Difficulty),
		Cost:         string(r.Cost),
		Seasons:      r.Seasons,
		Tags:         r.Tags,
		Servings:     r.Servings,
		CleanupLevel: r.CleanupLevel,
	}
}
