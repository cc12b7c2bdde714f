package stage

import (
	"context"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// Index is an open, in-memory view of a repository index. Stage only changes
// the in-memory index; Write persists it.
type Index interface {
	Match(ctx context.Context, specs []string, mode domain.StagingMode) ([]string, error)
	PathStatus(ctx context.Context, path string) (domain.StatusFlags, error)
	Stage(ctx context.Context, path string) error
	Write(ctx context.Context) error
}

type IndexOpener interface {
	OpenIndex(ctx context.Context, repoPath string) (Index, error)
}
