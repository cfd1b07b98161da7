package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is the JSON shape a reply must take. Definition is a JSON Schema
// document; it is compiled once, on first use.
type Schema struct {
	// Name is sent to providers that label structured output (OpenAI) and
	// names the schema in errors. Kebab-case.
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		// The compiler wants decoded JSON, not Go maps with typed slices.
		raw, err := json.Marshal(s.Definition)
		if err != nil {
			s.err = fmt.Errorf("marshal schema %s: %w", s.Name, err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			s.err = fmt.Errorf("parse schema %s: %w", s.Name, err)
			return
		}

		c := jsonschema.NewCompiler()
		url := "mem://" + s.Name + ".json"
		if err := c.AddResource(url, doc); err != nil {
			s.err = fmt.Errorf("add schema %s: %w", s.Name, err)
			return
		}
		s.compiled, s.err = c.Compile(url)
	})
	return s.compiled, s.err
}

// Check validates raw against the schema. Any failure, including raw not
// being JSON at all, is an *InvalidOutputError.
func (s *Schema) Check(raw json.RawMessage) error {
	fail := func(err error) error {
		return &InvalidOutputError{Schema: s.Name, Output: raw, Err: err}
	}

	compiled, err := s.compile()
	if err != nil {
		return fail(err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fail(fmt.Errorf("not JSON: %w", err))
	}
	if err := compiled.Validate(doc); err != nil {
		return fail(err)
	}
	return nil
}

// requiredStrings lists the required properties declared as strings, in
// declaration order.
func (s *Schema) requiredStrings() []string {
	props, _ := s.Definition["properties"].(map[string]any)
	var out []string
	for _, r := range asSlice(s.Definition["required"]) {
		name, ok := r.(string)
		if !ok {
			continue
		}
		if prop, ok := props[name].(map[string]any); ok && prop["type"] == "string" {
			out = append(out, name)
		}
	}
	return out
}

// asSlice accepts both []any and []string, since definitions are written
// by hand.
func asSlice(v any) []any {
	switch v := v.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	}
	return nil
}
