package repo

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/osvaldoandrade/shellcommander/internal/app/paths"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

var skippedDirs = []string{"target", "obj", ".git", "bin"}

type ListService struct {
	lister DirLister
	repo   domain.RepositoryContext
}

func NewListService(lister DirLister, repo domain.RepositoryContext) *ListService {
	return &ListService{lister: lister, repo: repo}
}

// List returns the <owner>/<repo> directories under the git dir.
func (s *ListService) List(ctx context.Context) (string, []string, error) {
	if strings.TrimSpace(s.repo.GitDir) == "" {
		return "", nil, ErrGitDirRequired
	}
	root, err := paths.NormalizeRepoPath(s.repo.GitDir)
	if err != nil {
		return "", nil, err
	}

	repos, err := s.lister.ListRepos(ctx, root, skippedDirs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return root, nil, ErrGitDirNotFound
		}
		return root, nil, err
	}
	return root, repos, nil
}
