package status

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/osvaldoandrade/shellcommander/internal/app/paths"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

type fakeStore struct {
	calledPath string
	calledOpts Options
	statuses   []domain.PathStatus
	submodules map[string]domain.SubmoduleState
	err        error
	subErr     error
}

func (f *fakeStore) PathStatuses(ctx context.Context, repoPath string, opts Options) ([]domain.PathStatus, error) {
	f.calledPath = repoPath
	f.calledOpts = opts
	return f.statuses, f.err
}

func (f *fakeStore) SubmoduleStates(ctx context.Context, repoPath string) (map[string]domain.SubmoduleState, error) {
	return f.submodules, f.subErr
}

func TestReportRequiresPath(t *testing.T) {
	svc := NewService(&fakeStore{})
	_, err := svc.Report(context.Background(), " ", Options{})
	if !errors.Is(err, paths.ErrRepoPathRequired) {
		t.Fatalf("expected ErrRepoPathRequired, got %v", err)
	}
}

func TestReportNormalizesPath(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	report, err := svc.Report(context.Background(), "repo", Options{IncludeIgnored: true})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}

	expected, err := filepath.Abs("repo")
	if err != nil {
		t.Fatalf("failed to build abs path: %v", err)
	}
	if store.calledPath != expected || report.Path != expected {
		t.Fatalf("expected path %q, got %q / %q", expected, store.calledPath, report.Path)
	}
	if !store.calledOpts.IncludeIgnored {
		t.Fatalf("expected options to be forwarded")
	}
}

func TestReportPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("open failed")
	svc := NewService(&fakeStore{err: storeErr})
	_, err := svc.Report(context.Background(), "repo", Options{})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestReportListsUntrackedAfterEntries(t *testing.T) {
	store := &fakeStore{
		statuses: []domain.PathStatus{
			worktreeOnly("notes.md", domain.WorktreeNew),
			indexOnly("a.txt", domain.IndexNew),
			worktreeOnly("lib", domain.WorktreeModified),
		},
		submodules: map[string]domain.SubmoduleState{"lib": domain.SubmoduleNewCommits},
	}
	svc := NewService(store)

	report, err := svc.Report(context.Background(), "repo", Options{})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}

	want := []string{"A  a.txt", " M lib (new commits)", "?? notes.md"}
	lines := report.Lines()
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}
