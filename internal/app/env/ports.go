package env

import (
	"context"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// PatchOp is one RFC 6902 operation against the environment document.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value string `json:"value"`
}

type Store interface {
	Load(ctx context.Context) (domain.Environment, error)
	Patch(ctx context.Context, ops []PatchOp) (domain.Environment, error)
	Path() string
}
