package commit

import (
	"context"
	"time"

	"github.com/osvaldoandrade/shellcommander/internal/app/status"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

type Stager interface {
	Stage(ctx context.Context, repoPath string, specs []string, mode domain.StagingMode) (domain.StagingResult, error)
}

type StatusReporter interface {
	Report(ctx context.Context, repoPath string, opts status.Options) (status.Report, error)
}

// Committer writes the index as a tree and commits it on top of HEAD.
type Committer interface {
	Commit(ctx context.Context, repoPath, message string, author domain.Identity) (string, error)
}

type Clock interface {
	Now() time.Time
}
