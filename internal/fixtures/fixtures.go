// Package fixtures loads seed lists for a session from YAML files.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/todo"
)

//go:embed fixtures.schema.json
var schemaJSON string

const schemaURL = "fixtures.schema.json"

// ValidationError points at the first offending value in a fixture file.
type ValidationError struct {
	Path    string // dotted path, e.g. todos.1.text
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

type file struct {
	Todos []entry `yaml:"todos"`
}

type entry struct {
	Text      string `yaml:"text"`
	Completed bool   `yaml:"completed"`
}

// Load reads, validates and decodes the fixture file at path.
func Load(path string) ([]todo.Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return Parse(b)
}

// Parse validates and decodes fixture YAML.
func Parse(b []byte) ([]todo.Seed, error) {
	var doc interface{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	seeds := make([]todo.Seed, 0, len(f.Todos))
	for _, e := range f.Todos {
		seeds = append(seeds, todo.Seed{Text: e.Text, Completed: e.Completed})
	}
	return seeds, nil
}

func validate(doc interface{}) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	// yaml.v3 yields Go ints and maps; normalize through JSON so the
	// validator sees the same shapes it would for a JSON document.
	raw, err := json.Marshal(doc)
	if err != nil {
		return &ValidationError{Message: "document must be a mapping with string keys"}
	}
	var obj interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}

	if err := schema.Validate(obj); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Message: err.Error()}
	}
	leaf := firstLeaf(ve)
	return &ValidationError{Path: pointerToPath(leaf.InstanceLocation), Message: leaf.Message}
}

// firstLeaf walks the cause tree down its first branch.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	parts := strings.Split(ptr, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return strings.Join(parts, ".")
}
