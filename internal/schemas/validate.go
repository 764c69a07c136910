// Package schemas validates the profile and project data files against
// embedded JSON Schemas.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed profile.schema.json
	profileSchema string

	//go:embed projects.schema.json
	projectsSchema string
)

// Embedded schema names, used in SchemaLoadError.Path
const (
	ProfileSchemaName  = "profile.schema.json"
	ProjectsSchemaName = "projects.schema.json"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateProfile validates a profile document (JSON or YAML content)
func ValidateProfile(content []byte) error {
	return validateDocument(ProfileSchemaName, profileSchema, content)
}

// ValidateProjects validates a project catalog document (JSON or YAML content)
func ValidateProjects(content []byte) error {
	return validateDocument(ProjectsSchemaName, projectsSchema, content)
}

// ValidateProfileFile reads and validates a profile file
func ValidateProfileFile(path string) error {
	content, err := readDocument(path)
	if err != nil {
		return err
	}
	return ValidateProfile(content)
}

// ValidateProjectsFile reads and validates a project catalog file
func ValidateProjectsFile(path string) error {
	content, err := readDocument(path)
	if err != nil {
		return err
	}
	return ValidateProjects(content)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)", gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent))
}

func readDocument(path string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	return content, nil
}

// validateDocument accepts JSON directly and converts anything else from YAML.
// YAML is a superset of JSON, so a JSON syntax error is reported by the YAML parser.
func validateDocument(name, schema string, content []byte) error {
	if !json.Valid(content) {
		converted, err := yamlToJSON(content)
		if err != nil {
			return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
		}
		content = converted
	}
	return validate(name, gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(content))
}

func yamlToJSON(content []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("document is neither valid JSON nor YAML: %w", err)
	}
	return json.Marshal(doc)
}

func validate(path string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    path,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
