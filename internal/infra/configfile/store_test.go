package configfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	envapp "github.com/osvaldoandrade/shellcommander/internal/app/env"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
	"github.com/osvaldoandrade/shellcommander/internal/infra/schema"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg", FileName)
	store, err := NewStore(path, domain.NewEnvironment("/tmp/shellcommander.db"))
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	return store
}

func TestLoadCreatesDefaults(t *testing.T) {
	store := newTestStore(t)

	env, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if env.GitName != "User" || env.ConnStr != "/tmp/shellcommander.db" {
		t.Fatalf("unexpected defaults %+v", env)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"conn_str\"") {
		t.Fatalf("expected canonical indented document, got %q", data)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Fatalf("expected trailing newline, got %q", data)
	}
}

func TestLoadFillsMissingFields(t *testing.T) {
	store := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(store.Path(), []byte(`{"git_name":"Ada"}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	env, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if env.GitName != "Ada" {
		t.Fatalf("expected Ada, got %q", env.GitName)
	}
	if env.GitIgnoreURL != domain.DefaultIgnoreURL || env.Version != domain.EnvironmentVersion {
		t.Fatalf("expected defaults to be filled, got %+v", env)
	}
}

func TestLoadRejectsInvalidDocument(t *testing.T) {
	store := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(store.Path(), []byte(`{"git_email":"not-an-email"}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := store.Load(context.Background()); !errors.Is(err, schema.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestPatchPersists(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	updated, err := store.Patch(ctx, []envapp.PatchOp{
		{Op: "replace", Path: "/git_email", Value: "ada@example.com"},
		{Op: "replace", Path: "/google_search_api_key", Value: "key"},
	})
	if err != nil {
		t.Fatalf("Patch returned error: %v", err)
	}
	if updated.GitEmail != "ada@example.com" || updated.GoogleSearchAPIKey != "key" {
		t.Fatalf("unexpected patched env %+v", updated)
	}

	reloaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if reloaded != updated {
		t.Fatalf("expected %+v, got %+v", updated, reloaded)
	}
}

func TestPatchRejectsInvalidValue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Patch(ctx, []envapp.PatchOp{{Op: "replace", Path: "/git_email", Value: "nope"}})
	if !errors.Is(err, schema.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}

	env, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if env.GitEmail != "user.name@email.com" {
		t.Fatalf("expected stored email to be unchanged, got %q", env.GitEmail)
	}
}

func TestNewStoreRequiresPath(t *testing.T) {
	if _, err := NewStore("", domain.Environment{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
