// Package schema checks stored collections against the current record
// layout using JSON Schema.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	//go:embed todos.schema.json
	todosSchema string
	//go:embed habits.schema.json
	habitsSchema string
)

var sources = map[string]string{
	"todos":  todosSchema,
	"habits": habitsSchema,
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

// Violation is one schema failure inside a collection.
type Violation struct {
	Path    string // e.g. [2].progress
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Keys lists the collections that have a schema.
func Keys() []string { return []string{"todos", "habits"} }

func load() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		compiled = map[string]*jsonschema.Schema{}
		for key, src := range sources {
			url := key + ".schema.json"
			if err := c.AddResource(url, strings.NewReader(src)); err != nil {
				compileErr = fmt.Errorf("add schema %s: %w", key, err)
				return
			}
			sch, err := c.Compile(url)
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", key, err)
				return
			}
			compiled[key] = sch
		}
	})
	return compiled, compileErr
}

// Validate checks data, the serialized collection stored under key. It
// returns the violations found; err is only for unknown keys, bad schemas
// or data that is not JSON at all.
func Validate(key string, data []byte) ([]Violation, error) {
	schemas, err := load()
	if err != nil {
		return nil, err
	}
	sch, ok := schemas[key]
	if !ok {
		return nil, fmt.Errorf("no schema for %q", key)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	err = sch.Validate(doc)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, err
	}
	var out []Violation
	collect(&out, ve)
	return out, nil
}

func collect(out *[]Violation, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, Violation{Path: pointerToPath(err.InstanceLocation), Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		collect(out, cause)
	}
}

// pointerToPath turns "/2/progress" into "[2].progress".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
