package repo

import (
	"context"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// Cloner clones url into path, reporting progress to sink. Sink calls are
// serialised and stop once Clone returns.
type Cloner interface {
	Clone(ctx context.Context, url, path string, sink domain.ProgressSink) error
}

type Initializer interface {
	Init(ctx context.Context, path string) error
}

type IgnoreFetcher interface {
	Fetch(ctx context.Context, templates []string) (string, error)
}

type FileWriter interface {
	WriteFile(path string, data []byte) error
}

type DirLister interface {
	ListRepos(ctx context.Context, root string, skip []string) ([]string, error)
}
