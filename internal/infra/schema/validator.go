package schema

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrInvalidDocument = errors.New("document does not match schema")

// Validator checks JSON documents against one compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// Compile builds a validator from the schema document. Format keywords such
// as "email" and "uri" are asserted.
func Compile(name string, schema []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(name, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

func (v *Validator) Validate(ctx context.Context, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var decoded any
	if err := json.Unmarshal(doc, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := v.schema.Validate(decoded); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", ErrInvalidDocument, leafMessage(verr))
		}
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

// leafMessage reports the first failing keyword with its instance location.
func leafMessage(err *jsonschema.ValidationError) string {
	leaf := err
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	if leaf.InstanceLocation == "" {
		return leaf.Message
	}
	return leaf.InstanceLocation + ": " + leaf.Message
}
