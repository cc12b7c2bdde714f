package canonicaljson

import (
	"context"
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
)

type Canonicalizer struct{}

// Canonicalize returns the RFC 8785 form of input.
func (Canonicalizer) Canonicalize(ctx context.Context, input []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value := jsontext.Value(append([]byte(nil), input...))
	if err := value.Canonicalize(); err != nil {
		return nil, fmt.Errorf("canonicalize json: %w", err)
	}

	return []byte(value), nil
}

// Document returns input canonicalized and then indented for a file on disk,
// terminated by a newline. Equal documents always produce equal bytes.
func (c Canonicalizer) Document(ctx context.Context, input []byte) ([]byte, error) {
	canonical, err := c.Canonicalize(ctx, input)
	if err != nil {
		return nil, err
	}

	value := jsontext.Value(canonical)
	if err := value.Indent(jsontext.WithIndent("  "), jsontext.SpaceAfterColon(true)); err != nil {
		return nil, fmt.Errorf("indent json: %w", err)
	}
	return append([]byte(value), '\n'), nil
}
