package project

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Rudull/baby-project-manager/internal/calendar"
	"github.com/Rudull/baby-project-manager/internal/utils"
)

//go:embed project.schema.json
var embeddedSchema []byte

const embeddedSchemaURL = "project.schema.json"

// Schema returns the embedded JSON Schema for project files.
func Schema() []byte {
	return append([]byte(nil), embeddedSchema...)
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath overrides the embedded schema when set.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
}

// Validate checks f against the JSON Schema and then checks the hierarchy
// and date rules the schema cannot express.
func (f *File) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schema, err := compileSchema(opts.SchemaPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("schema unavailable, using structural checks only: %v", err))
	} else if err := validateWithSchema(f, schema); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}

	f.validateStructure(result)
	return result
}

func compileSchema(path string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	if path == "" {
		if err := compiler.AddResource(embeddedSchemaURL, bytes.NewReader(embeddedSchema)); err != nil {
			return nil, err
		}
		return compiler.Compile(embeddedSchemaURL)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("schema file: %w", err)
	}
	return compiler.Compile(absPath)
}

func validateWithSchema(f *File, schema *jsonschema.Schema) error {
	// Round-trip through JSON so YAML-loaded files validate the same way.
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal file for validation: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal file for validation: %w", err)
	}
	return schema.Validate(doc)
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// validateStructure checks the hierarchy and date rules.
func (f *File) validateStructure(result *ValidationResult) {
	fail := func(path string, err error) {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Path: path, Err: err})
	}

	if f.SchemaVersion != SchemaVersion {
		fail("schema_version", fmt.Errorf("expected %d, got %d", SchemaVersion, f.SchemaVersion))
	}

	for i, t := range f.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if t.IsSubtask && i == 0 {
			fail(path+".is_subtask", fmt.Errorf("%w: subtask has no parent", ErrStructural))
		}
		if t.IsSubtask && t.Collapsed {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s.collapsed: ignored on a subtask", path))
		}

		start, startErr := parseOptionalDate(t.StartDate)
		if startErr != nil {
			fail(path+".start_date", startErr)
		}
		end, endErr := parseOptionalDate(t.EndDate)
		if endErr != nil {
			fail(path+".end_date", endErr)
		}
		if !start.IsZero() && !end.IsZero() && end.Before(start) {
			fail(path+".end_date", fmt.Errorf("%s is before start %s", t.EndDate, t.StartDate))
		}
		if t.Duration < 0 {
			fail(path+".duration", fmt.Errorf("%w: %d", ErrInvalidDuration, t.Duration))
		}
	}
}

func parseOptionalDate(text string) (time.Time, error) {
	if text == "" {
		return time.Time{}, nil
	}
	return calendar.ParseDate(text)
}
