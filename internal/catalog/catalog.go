// Package catalog decodes menu taxonomy exports: a JSON array of
// {fKey, fName, fParent, fDescription} rows, validated against an embedded
// JSON schema before use.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/quickmenu/mcp-server/internal/indexing"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://quickmenu.dev/schema/menu.json"

//go:embed menu.schema.json
var menuSchema []byte

// ErrSchema is returned when an export does not match the menu schema.
var ErrSchema = errors.New("menu export does not match schema")

// ValidationIssue is one schema violation
type ValidationIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError lists every schema violation found in an export
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrSchema.Error()
	}
	return fmt.Sprintf("%s: %s: %s", ErrSchema, e.Issues[0].Path, e.Issues[0].Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrSchema
}

// menuRow mirrors one row of the export
type menuRow struct {
	Key         string  `json:"fKey"`
	Name        string  `json:"fName"`
	Parent      *string `json:"fParent"`
	Description *string `json:"fDescription"`
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var schemaDoc interface{}
	if err := json.Unmarshal(menuSchema, &schemaDoc); err != nil {
		return nil, fmt.Errorf("invalid embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to add schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Validate checks a raw export against the menu schema
func Validate(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse menu export: %w", err)
	}
	return validateDoc(doc)
}

func validateDoc(doc interface{}) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &ValidationError{Issues: collectIssues(validationErr)}
		}
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// collectIssues flattens the leaf causes of a schema error
func collectIssues(validationErr *jsonschema.ValidationError) []ValidationIssue {
	if len(validationErr.Causes) == 0 {
		path := "$"
		if len(validationErr.InstanceLocation) > 0 {
			path = "$." + strings.Join(validationErr.InstanceLocation, ".")
		}
		return []ValidationIssue{{Path: path, Message: validationErr.Error()}}
	}

	var issues []ValidationIssue
	for _, cause := range validationErr.Causes {
		issues = append(issues, collectIssues(cause)...)
	}
	return issues
}

// DecodeMenu validates an export and returns its nodes keyed by id. When an
// id appears twice the later row wins.
func DecodeMenu(data []byte) (map[string]indexing.MenuNode, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var rows []menuRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode menu export: %w", err)
	}

	nodes := make(map[string]indexing.MenuNode, len(rows))
	for _, row := range rows {
		node := indexing.MenuNode{
			ID:   row.Key,
			Name: row.Name,
		}
		if row.Parent != nil {
			node.ParentID = *row.Parent
		}
		if row.Description != nil {
			node.Description = *row.Description
		}
		nodes[row.Key] = node
	}
	return nodes, nil
}

// LoadMenuFile reads and decodes an export from disk
func LoadMenuFile(path string) (map[string]indexing.MenuNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu export: %w", err)
	}
	return DecodeMenu(data)
}
