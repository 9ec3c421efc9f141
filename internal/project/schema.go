package project

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const projectsSchemaURL = "https://schemas.pm.local/project-manager.json"

const projectsSchemaText = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "path"],
    "additionalProperties": false,
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string"},
      "path": {"type": "string"},
      "icon": {"type": "string"},
      "folder": {"type": "string"}
    }
  }
}`

const foldersSchemaURL = "https://schemas.pm.local/project-folders.json"

const foldersSchemaText = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name"],
    "additionalProperties": false,
    "properties": {
      "name": {"type": "string", "minLength": 1},
      "icon": {"type": "string"}
    }
  }
}`

var (
	projectsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileSchema(projectsSchemaURL, projectsSchemaText)
	})
	foldersSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileSchema(foldersSchemaURL, foldersSchemaText)
	})
)

func compileSchema(url, text string) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", url, err)
	}

	compiler := jsonschema.NewCompiler()

	err = compiler.AddResource(url, doc)
	if err != nil {
		return nil, fmt.Errorf("add schema %s: %w", url, err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", url, err)
	}

	return schema, nil
}

// validateShape checks standard JSON data against schema.
func validateShape(schema func() (*jsonschema.Schema, error), data []byte) error {
	sch, err := schema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	err = sch.Validate(inst)
	if err != nil {
		// Validation errors are multi-line trees; keep warnings on one line.
		return fmt.Errorf("schema: %s", strings.Join(strings.Fields(err.Error()), " "))
	}

	return nil
}
