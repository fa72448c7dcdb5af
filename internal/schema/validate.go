// Package schema validates ndkpkg configuration files against the embedded JSON schema.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/ndkpkg/schema"
)

// ProjectSchemaName is the embedded schema for ndkpkg.json.
const ProjectSchemaName = "ndkpkg.schema.json"

var (
	projectSchema *jsonschema.Schema
	compileOnce   sync.Once
	compileErr    error
)

// compileSchemas compiles the embedded schema once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		data, err := schemafs.FS.ReadFile(ProjectSchemaName)
		if err != nil {
			compileErr = fmt.Errorf("read project schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal project schema: %w", err)
			return
		}

		if err := compiler.AddResource(ProjectSchemaName, doc); err != nil {
			compileErr = fmt.Errorf("add project schema resource: %w", err)
			return
		}

		projectSchema, err = compiler.Compile(ProjectSchemaName)
		if err != nil {
			compileErr = fmt.Errorf("compile project schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateConfig validates JSON data against the project schema.
func ValidateConfig(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := projectSchema.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}
