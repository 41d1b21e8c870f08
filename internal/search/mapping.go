package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for recipe documents.
//
// Recipe names, descriptions, and ingredient text are Japanese, so text
// fields use the CJK analyzer (bigram tokenization). Filter fields (meal,
// difficulty, cost, seasons) use the keyword analyzer for exact matching.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = cjk.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Name field - primary search target
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = cjk.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = cjk.AnalyzerName
	descFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	ingredientsFieldMapping := bleve.NewTextFieldMapping()
	ingredientsFieldMapping.Analyzer = cjk.AnalyzerName
	ingredientsFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("ingredients", ingredientsFieldMapping)

	tipFieldMapping := bleve.NewTextFieldMapping()
	tipFieldMapping.Analyzer = cjk.AnalyzerName
	tipFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("tip", tipFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	sourceFieldMapping := bleve.NewTextFieldMapping()
	sourceFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("source", sourceFieldMapping)

	mealFieldMapping := bleve.NewTextFieldMapping()
	mealFieldMapping.Analyzer = keyword.Name
	mealFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("meal", mealFieldMapping)

	difficultyFieldMapping := bleve.NewTextFieldMapping()
	difficultyFieldMapping.Analyzer = keyword.Name
	difficultyFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("difficulty", difficultyFieldMapping)

	costFieldMapping := bleve.NewTextFieldMapping()
	costFieldMapping.Analyzer = keyword.Name
	costFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("cost", costFieldMapping)

	seasonsFieldMapping := bleve.NewTextFieldMapping()
	seasonsFieldMapping.Analyzer = keyword.Name
	seasonsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("seasons", seasonsFieldMapping)

	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = keyword.Name
	tagsFieldMapping.Store = true
	tagsFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	servingsFieldMapping := bleve.NewNumericFieldMapping()
	servingsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("servings", servingsFieldMapping)

	cleanupFieldMapping := bleve.NewNumericFieldMapping()
	cleanupFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("cleanup_level", cleanupFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
