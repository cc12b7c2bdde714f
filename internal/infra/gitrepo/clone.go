package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"

	repoapp "github.com/osvaldoandrade/shellcommander/internal/app/repo"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// Clone fetches url into a new worktree at path and checks out the remote
// HEAD. Progress of the pack transfer and of the checkout is sent to sink.
func (s *Store) Clone(ctx context.Context, url, path string, sink domain.ProgressSink) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := ensureClonePath(path); err != nil {
		return err
	}

	auth, err := authForURL(url)
	if err != nil {
		return err
	}

	events := newSerialSink(sink)
	defer events.Stop()

	worktree := newCheckoutFS(osfs.New(path), events)
	storage := newProgressStorage(
		filesystem.NewStorage(osfs.New(filepath.Join(path, git.GitDirName)), cache.NewObjectLRUDefault()),
		events,
	)

	repo, err := git.CloneContext(ctx, storage, worktree, &git.CloneOptions{
		URL:        url,
		Auth:       auth,
		NoCheckout: true,
	})
	if err != nil {
		_ = os.RemoveAll(path)
		return fmt.Errorf("%w: %v", domain.ErrCloneTransport, err)
	}

	head, err := repo.Head()
	if err != nil {
		// Empty remote: nothing to check out.
		return nil
	}

	total, err := countTreeFiles(repo, head.Hash())
	if err != nil {
		return fmt.Errorf("%w: read HEAD tree: %v", domain.ErrCloneTransport, err)
	}
	worktree.Expect(total)

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: head.Hash(), Mode: git.HardReset}); err != nil {
		return fmt.Errorf("checkout %s: %w", head.Name().Short(), err)
	}
	return nil
}

func ensureClonePath(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("%w: %s", repoapp.ErrRepoExists, path)
		}
		return fmt.Errorf("clone path is a file: %w", os.ErrExist)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check clone path: %w", err)
	}

	parent := filepath.Dir(path)
	if parent != "" && parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
	}

	return nil
}
