// internal/models/schema.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// querySchema is the wire contract with the requirement extractor. Every
// field is optional; unknown fields are tolerated because extractor
// versions drift ahead of this service.
var querySchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"deviceType": map[string]interface{}{
			"type": "string",
		},
		"requirements": map[string]interface{}{
			"type":                 "object",
			"additionalProperties": map[string]interface{}{"type": "boolean"},
		},
		"minBudget": map[string]interface{}{"type": []string{"integer", "null"}},
		"maxBudget": map[string]interface{}{"type": []string{"integer", "null"}},
		"brands": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"freeText": map[string]interface{}{"type": []string{"string", "null"}},
		"topK":     map[string]interface{}{"type": []string{"integer", "null"}},
	},
	"additionalProperties": true,
}

// DecodeQuery validates a raw extractor payload against the wire schema and
// unmarshals it. Schema violations are reported as one error listing every
// failed field.
func DecodeQuery(raw []byte) (*Query, error) {
	schemaLoader := gojsonschema.NewGoLoader(querySchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, fmt.Errorf("invalid query payload: %s", strings.Join(details, "; "))
	}

	var q Query
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("decode query payload: %w", err)
	}
	return &q, nil
}
