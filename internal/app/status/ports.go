package status

import (
	"context"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

type Options struct {
	IncludeIgnored bool
}

// Store reports the raw status of a working tree. PathStatuses returns the
// changed paths in the order the repository enumerates them.
type Store interface {
	PathStatuses(ctx context.Context, repoPath string, opts Options) ([]domain.PathStatus, error)
	SubmoduleStates(ctx context.Context, repoPath string) (map[string]domain.SubmoduleState, error)
}

type SubmoduleLookup interface {
	SubmoduleState(path string) (domain.SubmoduleState, bool)
}

// SubmoduleMap is a SubmoduleLookup over precomputed states keyed by path.
type SubmoduleMap map[string]domain.SubmoduleState

func (m SubmoduleMap) SubmoduleState(path string) (domain.SubmoduleState, bool) {
	state, ok := m[path]
	return state, ok
}
