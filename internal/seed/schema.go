package seed

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	usersSchema      = "schemas/users.schema.json"
	propertiesSchema = "schemas/properties.schema.json"
)

// compileSchemas loads every embedded schema. Formats (email, uri) are asserted.
func compileSchemas() (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	compiled := make(map[string]*jsonschema.Schema, 2)
	for _, name := range []string{usersSchema, propertiesSchema} {
		raw, err := schemaFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("adding schema %s: %w", name, err)
		}
		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compiling schema %s: %w", name, err)
		}
		compiled[name] = schema
	}
	return compiled, nil
}

// validateDocument checks raw JSON against schema.
func validateDocument(schema *jsonschema.Schema, raw []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return schema.Validate(doc)
}
