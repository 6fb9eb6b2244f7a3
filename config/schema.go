package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the settings document.
// Unknown top-level sections are allowed; they become extensions.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "yaml",
	}

	schema := r.Reflect(&Settings{})
	schema.Title = "Game State Settings"
	schema.Description = "Settings document holding supported games and selection preferences."

	return json.MarshalIndent(schema, "", "  ")
}
