// Package schema provides helper constructors for JSON Schema fragments used
// in hand-tuned tool declarations.
package schema

import (
	jsonschema "github.com/swaggest/jsonschema-go"
)

// String creates a schema for a string field.
func String(description string) *jsonschema.Schema {
	strType := jsonschema.SimpleType("string")
	return &jsonschema.Schema{
		Type:        &jsonschema.Type{SimpleTypes: &strType},
		Description: &description,
	}
}

// StringEnum creates a schema for a string field restricted to the given values.
func StringEnum(description string, values ...string) *jsonschema.Schema {
	s := String(description)
	enum := make([]interface{}, len(values))
	for i, v := range values {
		enum[i] = v
	}
	s.Enum = enum
	return s
}

// Number creates a schema for a number field.
func Number(description string) *jsonschema.Schema {
	numType := jsonschema.SimpleType("number")
	return &jsonschema.Schema{
		Type:        &jsonschema.Type{SimpleTypes: &numType},
		Description: &description,
	}
}

// Object creates a schema for an object with properties and required fields.
func Object(properties map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	props := make(map[string]jsonschema.SchemaOrBool, len(properties))
	for name, prop := range properties {
		props[name] = jsonschema.SchemaOrBool{TypeObject: prop}
	}
	objType := jsonschema.SimpleType("object")
	return &jsonschema.Schema{
		Type:       &jsonschema.Type{SimpleTypes: &objType},
		Properties: props,
		Required:   required,
	}
}
