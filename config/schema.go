package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for jjprompt.yml by reflecting
// the FileConfig struct. The Extensions field is excluded via its
// jsonschema:"-" tag, and additional properties stay legal so ambient
// sections like `logging` can ride along in the same file.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		// Expand the root struct instead of hiding it behind a $ref.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	schema := r.Reflect(&FileConfig{})
	schema.Title = "jjprompt Configuration"
	schema.Description = "Schema for the jjprompt.yml prompt configuration file."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
