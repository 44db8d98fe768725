package jsonexport

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

const (
	pageSchemaName     = "export.schema.json"
	childrenSchemaName = "children.schema.json"
)

// ErrInvalidDocument wraps schema violations in export files.
var ErrInvalidDocument = errors.New("jsonexport: invalid document")

// Issue is one schema violation.
type Issue struct {
	Location string
	Message  string
}

// DocumentError reports the schema violations of one file.
type DocumentError struct {
	Path   string
	Issues []Issue
}

func (e *DocumentError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		parts = append(parts, location+": "+issue.Message)
	}
	return fmt.Sprintf("jsonexport: %s: %s", e.Path, strings.Join(parts, "; "))
}

func (e *DocumentError) Unwrap() error {
	return ErrInvalidDocument
}

type schemas struct {
	page     *jsonschema.Schema
	children *jsonschema.Schema
}

func compileSchemas() (schemas, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	for _, name := range []string{pageSchemaName, childrenSchemaName} {
		data, err := schemaFS.ReadFile("schema/" + name)
		if err != nil {
			return schemas{}, err
		}
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			return schemas{}, fmt.Errorf("jsonexport: load schema %s: %w", name, err)
		}
	}
	page, err := compiler.Compile(pageSchemaName)
	if err != nil {
		return schemas{}, fmt.Errorf("jsonexport: compile page schema: %w", err)
	}
	children, err := compiler.Compile(childrenSchemaName)
	if err != nil {
		return schemas{}, fmt.Errorf("jsonexport: compile children schema: %w", err)
	}
	return schemas{page: page, children: children}, nil
}

func validate(schema *jsonschema.Schema, path string, doc any) error {
	err := schema.Validate(doc)
	if err == nil {
		return nil
	}
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("jsonexport: validate %s: %w", path, err)
	}
	return &DocumentError{Path: path, Issues: collectIssues(validationErr)}
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
