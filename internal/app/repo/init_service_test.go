package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

type fakeInitializer struct {
	path  string
	err   error
	calls *[]string
}

func (f *fakeInitializer) Init(ctx context.Context, path string) error {
	*f.calls = append(*f.calls, "init")
	f.path = path
	return f.err
}

type fakeIgnoreFetcher struct {
	templates []string
	text      string
	err       error
	calls     *[]string
}

func (f *fakeIgnoreFetcher) Fetch(ctx context.Context, templates []string) (string, error) {
	*f.calls = append(*f.calls, "fetch")
	f.templates = templates
	return f.text, f.err
}

type fakeFileWriter struct {
	files map[string]string
	err   error
	calls *[]string
}

func (f *fakeFileWriter) WriteFile(path string, data []byte) error {
	*f.calls = append(*f.calls, "write")
	if f.err != nil {
		return f.err
	}
	if f.files == nil {
		f.files = map[string]string{}
	}
	f.files[path] = string(data)
	return nil
}

type initFixture struct {
	calls   []string
	init    *fakeInitializer
	ignores *fakeIgnoreFetcher
	files   *fakeFileWriter
	svc     *InitService
	gitDir  string
}

func newInitFixture(t *testing.T) *initFixture {
	f := &initFixture{gitDir: t.TempDir()}
	f.init = &fakeInitializer{calls: &f.calls}
	f.ignores = &fakeIgnoreFetcher{calls: &f.calls, text: "*.log\n"}
	f.files = &fakeFileWriter{calls: &f.calls}
	repo := domain.RepositoryContext{GitDir: f.gitDir, Author: domain.Identity{Name: "ada", Email: "ada@example.com"}}
	f.svc = NewInitService(f.init, f.ignores, f.files, repo)
	return f
}

func TestInitCreatesUnderAuthorDir(t *testing.T) {
	f := newInitFixture(t)

	path, err := f.svc.Init(context.Background(), InitOptions{Name: "notes", Ignores: []string{"go", " ", "macos"}})
	if err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	expected := filepath.Join(f.gitDir, "ada", "notes")
	if path != expected || f.init.path != expected {
		t.Fatalf("expected path %q, got %q / %q", expected, path, f.init.path)
	}
	if len(f.ignores.templates) != 2 || f.ignores.templates[1] != "macos" {
		t.Fatalf("unexpected templates %v", f.ignores.templates)
	}
	if f.files.files[filepath.Join(expected, ".gitignore")] != "*.log\n" {
		t.Fatalf("expected .gitignore to be written, got %v", f.files.files)
	}
	if len(f.calls) != 3 || f.calls[0] != "fetch" || f.calls[1] != "init" || f.calls[2] != "write" {
		t.Fatalf("unexpected call order %v", f.calls)
	}
}

func TestInitWithoutIgnores(t *testing.T) {
	f := newInitFixture(t)

	if _, err := f.svc.Init(context.Background(), InitOptions{Name: "notes"}); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if len(f.calls) != 1 || f.calls[0] != "init" {
		t.Fatalf("expected only init call, got %v", f.calls)
	}
}

func TestInitRequiresName(t *testing.T) {
	f := newInitFixture(t)

	for _, name := range []string{"  ", "a/b"} {
		_, err := f.svc.Init(context.Background(), InitOptions{Name: name})
		if !errors.Is(err, ErrRepoNameRequired) {
			t.Fatalf("expected ErrRepoNameRequired for %q, got %v", name, err)
		}
	}
}

func TestInitStopsOnFetchError(t *testing.T) {
	f := newInitFixture(t)
	fetchErr := errors.New("offline")
	f.ignores.err = fetchErr

	_, err := f.svc.Init(context.Background(), InitOptions{Name: "notes", Ignores: []string{"go"}})
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if len(f.calls) != 1 {
		t.Fatalf("expected no repository to be created, got %v", f.calls)
	}
}

func TestInitStopsOnInitError(t *testing.T) {
	f := newInitFixture(t)
	initErr := errors.New("init failed")
	f.init.err = initErr

	_, err := f.svc.Init(context.Background(), InitOptions{Name: "notes", Ignores: []string{"go"}})
	if !errors.Is(err, initErr) {
		t.Fatalf("expected init error, got %v", err)
	}
	if len(f.calls) != 2 {
		t.Fatalf("expected fetch and init calls only, got %v", f.calls)
	}
}
