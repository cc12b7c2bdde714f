package status

import (
	"context"

	"github.com/osvaldoandrade/shellcommander/internal/app/paths"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// Report is the short status of a repository. Untracked paths are listed
// apart from the classified entries, after them.
type Report struct {
	Path      string
	Entries   []domain.StatusEntry
	Untracked []string
}

// Lines renders the report the way "git status --short" prints it.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(r.Entries)+len(r.Untracked))
	for _, entry := range r.Entries {
		lines = append(lines, entry.String())
	}
	for _, path := range r.Untracked {
		lines = append(lines, "?? "+path)
	}
	return lines
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Report(ctx context.Context, repoPath string, opts Options) (Report, error) {
	absPath, err := paths.NormalizeRepoPath(repoPath)
	if err != nil {
		return Report{}, err
	}

	statuses, err := s.store.PathStatuses(ctx, absPath, opts)
	if err != nil {
		return Report{}, err
	}

	submodules, err := s.store.SubmoduleStates(ctx, absPath)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Path:    absPath,
		Entries: NewClassifier(SubmoduleMap(submodules)).ClassifyAll(statuses),
	}
	for _, ps := range statuses {
		if ps.Flags.IsUntracked() {
			report.Untracked = append(report.Untracked, untrackedPath(ps))
		}
	}
	return report, nil
}

func untrackedPath(ps domain.PathStatus) string {
	if ps.IndexToWorkdir != nil && ps.IndexToWorkdir.OldPath != "" {
		return ps.IndexToWorkdir.OldPath
	}
	return ps.Path
}
