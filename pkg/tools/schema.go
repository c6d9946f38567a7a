package tools

import (
	"encoding/json"
	"fmt"
)

// Property describes a single argument in a tool's input schema.
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Items       *Property `json:"items,omitempty"`
}

// InputSchema is the declared shape of a tool's argument bundle. It is a
// deliberately shallow subset of JSON Schema: an object with typed
// properties and a required list.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// ObjectSchema builds an object input schema.
func ObjectSchema(props map[string]Property, required ...string) InputSchema {
	return InputSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// ValidateArgs checks an argument bundle against a schema: required keys
// must be present and non-null, and present values must match their declared
// primitive type. Nested object contents are the handler's concern.
func ValidateArgs(schema InputSchema, args json.RawMessage) error {
	var bundle map[string]json.RawMessage
	if len(args) == 0 {
		bundle = map[string]json.RawMessage{}
	} else if err := json.Unmarshal(args, &bundle); err != nil {
		return fmt.Errorf("arguments must be a JSON object: %w", err)
	}

	for _, key := range schema.Required {
		raw, ok := bundle[key]
		if !ok || string(raw) == "null" {
			return fmt.Errorf("missing required argument %q", key)
		}
	}

	for key, raw := range bundle {
		prop, ok := schema.Properties[key]
		if !ok {
			// Unknown keys pass through; the forge-facing handler ignores them.
			continue
		}
		if string(raw) == "null" {
			continue
		}
		if err := checkType(key, prop, raw); err != nil {
			return err
		}
	}

	return nil
}

func checkType(key string, prop Property, raw json.RawMessage) error {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("argument %q is not valid JSON: %w", key, err)
	}

	switch prop.Type {
	case "string":
		if _, ok := v.(string); !ok {
			return fmt.Errorf("argument %q must be a string", key)
		}
	case "number", "integer":
		if _, ok := v.(float64); !ok {
			return fmt.Errorf("argument %q must be a number", key)
		}
	case "boolean":
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("argument %q must be a boolean", key)
		}
	case "array":
		if _, ok := v.([]interface{}); !ok {
			return fmt.Errorf("argument %q must be an array", key)
		}
	case "object":
		if _, ok := v.(map[string]interface{}); !ok {
			return fmt.Errorf("argument %q must be an object", key)
		}
	}

	return nil
}
