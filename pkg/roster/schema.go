// pkg/roster/schema.go
package roster

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// rosterSchema is the JSON schema every roster document must satisfy before
// unmarshalling.
const rosterSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["activities"],
  "properties": {
    "version": {"type": "string"},
    "lastUpdated": {"type": "string"},
    "activities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "description", "schedule", "max_participants"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "schedule": {"type": "string"},
          "max_participants": {"type": "integer", "minimum": 1},
          "participants": {
            "type": "array",
            "items": {"type": "string", "minLength": 1}
          }
        }
      }
    }
  }
}`

func validateSchema(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(rosterSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("roster validation failed: %v", errs)
	}

	return nil
}
