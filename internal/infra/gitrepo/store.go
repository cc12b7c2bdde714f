package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"

	repoapp "github.com/osvaldoandrade/shellcommander/internal/app/repo"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// Store is the go-git backed repository adapter. It is stateless; every call
// opens the repository at the given path.
type Store struct {
	options StoreOptions
}

type StoreOptions struct {
	// SignCommits creates commits through the git binary with -S.
	SignCommits bool
	SignKey     string
}

func NewStore() *Store {
	return &Store{}
}

func NewStoreWithOptions(options StoreOptions) *Store {
	return &Store{options: options}
}

// Init creates a repository with a worktree at path.
func (s *Store) Init(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create repo dir: %w", err)
	}

	_, err := git.PlainInit(path, false)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryAlreadyExists) {
			return fmt.Errorf("%w: %s", repoapp.ErrRepoExists, path)
		}
		return fmt.Errorf("init git repo: %w", err)
	}

	return nil
}

func openWorktree(repoPath string) (*git.Repository, *git.Worktree, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open %s: %v", domain.ErrRepositoryAccess, repoPath, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open worktree: %v", domain.ErrRepositoryAccess, err)
	}
	return repo, wt, nil
}

// FindRoot returns the worktree root of the repository containing path.
func FindRoot(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", domain.ErrRepositoryAccess, path, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: open worktree: %v", domain.ErrRepositoryAccess, err)
	}
	return wt.Filesystem.Root(), nil
}
