package schema

// Collection describes the persisted book file: an array of book objects.
// Keys are optional; present keys must carry the right JSON type.
var Collection = map[string]any{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":            map[string]any{"type": "string"},
			"author":           map[string]any{"type": "string"},
			"publication_year": map[string]any{"type": "string"},
			"genre":            map[string]any{"type": "string"},
			"is_read":          map[string]any{"type": "boolean"},
			"reading_progress": map[string]any{"type": "integer"},
		},
	},
}
