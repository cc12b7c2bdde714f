package jsonpatch

import (
	"context"
	"fmt"

	"github.com/evanphx/json-patch/v5"
	"github.com/go-json-experiment/json"

	envapp "github.com/osvaldoandrade/shellcommander/internal/app/env"
)

// Patcher applies RFC 6902 operations to a JSON document.
type Patcher struct{}

func (Patcher) Apply(ctx context.Context, doc []byte, ops []envapp.PatchOp) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return doc, nil
	}

	raw, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("encode patch: %w", err)
	}
	decoded, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}

	out, err := decoded.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("apply patch: %w", err)
	}
	return out, nil
}
