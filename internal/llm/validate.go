package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Compile checks that the schema definition is itself valid JSON Schema.
// Generation calls it lazily; tests call it to catch broken schemas early.
func (s *Schema) Compile() error {
	s.once.Do(func() {
		s.compiled, s.err = compileSchema(s)
	})
	return s.err
}

// validate checks raw against the schema. Any failure is reported as
// *ErrInvalidResponse so RetryProvider gives the model one more try.
func (s *Schema) validate(raw json.RawMessage) error {
	if err := s.Compile(); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", s.Name, err)}
	}

	// jsonschema's decoder keeps numbers as json.Number, which the
	// validator expects.
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	if err := s.compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("does not match %s: %w", s.Name, err)}
	}
	return nil
}

func compileSchema(s *Schema) (*jsonschema.Schema, error) {
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	url := "schema://lingo/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	return c.Compile(url)
}
