package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

type fakeLister struct {
	root  string
	skip  []string
	repos []string
	err   error
}

func (f *fakeLister) ListRepos(ctx context.Context, root string, skip []string) ([]string, error) {
	f.root = root
	f.skip = skip
	return f.repos, f.err
}

func TestListUsesGitDir(t *testing.T) {
	gitDir := t.TempDir()
	lister := &fakeLister{repos: []string{"a/b"}}
	svc := NewListService(lister, domain.RepositoryContext{GitDir: gitDir})

	root, repos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if root != gitDir || lister.root != gitDir {
		t.Fatalf("expected root %q, got %q / %q", gitDir, root, lister.root)
	}
	if len(repos) != 1 || repos[0] != "a/b" {
		t.Fatalf("unexpected repos %v", repos)
	}
	if len(lister.skip) != 4 {
		t.Fatalf("expected skipped dir names, got %v", lister.skip)
	}
}

func TestListMissingGitDir(t *testing.T) {
	lister := &fakeLister{err: fmt.Errorf("walk: %w", fs.ErrNotExist)}
	svc := NewListService(lister, domain.RepositoryContext{GitDir: "/does/not/exist"})

	_, _, err := svc.List(context.Background())
	if !errors.Is(err, ErrGitDirNotFound) {
		t.Fatalf("expected ErrGitDirNotFound, got %v", err)
	}

	svc = NewListService(lister, domain.RepositoryContext{})
	if _, _, err := svc.List(context.Background()); !errors.Is(err, ErrGitDirRequired) {
		t.Fatalf("expected ErrGitDirRequired, got %v", err)
	}
}
