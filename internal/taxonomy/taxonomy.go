package taxonomy

import "strings"

// Levels lists the taxonomy levels returned by the search engine, in
// display order. The order matters: result tables are built one column
// group per level, and the first level is used for the result-count
// consistency check.
var Levels = []string{"phylum", "class", "order", "family", "genus", "species"}

// Model describes one pretrained embedding model served by the engine.
type Model struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Models lists the embedding models a user can select from. The first
// entry is the default.
var Models = []Model{
	{ID: "MycoAI-CNN", Description: "CNN trained on the UNITE ITS dataset"},
	{ID: "MycoAI-BERT", Description: "BERT transformer trained on the UNITE ITS dataset"},
}

// DefaultModel returns the model used when the user makes no selection.
func DefaultModel() string {
	return Models[0].ID
}

// ValidModel reports whether id names a known pretrained model.
func ValidModel(id string) bool {
	for _, m := range Models {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Capitalize upper-cases the first letter of a level name for use as a
// column header ("species" -> "Species").
func Capitalize(level string) string {
	if level == "" {
		return ""
	}
	return strings.ToUpper(level[:1]) + level[1:]
}
