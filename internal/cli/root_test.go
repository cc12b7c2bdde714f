package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/osvaldoandrade/shellcommander/internal/infra/gitrepo"
)

type cliHarness struct {
	t      *testing.T
	config string
	db     string
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	dir := t.TempDir()
	h := &cliHarness{
		t:      t,
		config: filepath.Join(dir, "config.json"),
		db:     filepath.Join(dir, "data.db"),
	}
	h.run("env", "set", "--conn-str", h.db, "--git-dir", filepath.Join(dir, "code"))
	return h
}

func (h *cliHarness) run(args ...string) string {
	h.t.Helper()
	out, err := h.exec(args...)
	if err != nil {
		h.t.Fatalf("%s returned error: %v", strings.Join(args, " "), err)
	}
	return out
}

func (h *cliHarness) exec(args ...string) (string, error) {
	h.t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--config", h.config}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEnvSetGetAndReset(t *testing.T) {
	h := newHarness(t)

	h.run("env", "set", "--git-name", "Ada Lovelace", "--git-email", "ada@example.com")
	out := h.run("--json", "env", "get", "git-name", "git_email")

	var settings []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal([]byte(out), &settings); err != nil {
		t.Fatalf("decode settings: %v (%s)", err, out)
	}
	if len(settings) != 2 || settings[0].Value != "Ada Lovelace" || settings[1].Value != "ada@example.com" {
		t.Fatalf("unexpected settings %+v", settings)
	}

	h.run("env", "reset", "git_name")
	out = h.run("env", "get", "git_name")
	if out != "Git User Name: User\n" {
		t.Fatalf("unexpected reset output %q", out)
	}

	if _, err := h.exec("env", "set", "--git-email", "broken"); NormalizeError(err).Kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := h.exec("env", "get", "nope"); NormalizeError(err).Kind != KindValidation {
		t.Fatalf("expected validation error for unknown key, got %v", err)
	}
}

func TestQuoteCommands(t *testing.T) {
	h := newHarness(t)

	if _, err := h.exec("quote", "random"); NormalizeError(err).Kind != KindNotFound {
		t.Fatalf("expected not_found without quotes, got %v", err)
	}

	h.run("quote", "add", "-q", "Simplicity is prerequisite for reliability.", "-a", "Dijkstra")
	out := h.run("quote", "daily")
	if out != "Simplicity is prerequisite for reliability.\n\t- Dijkstra\n" {
		t.Fatalf("unexpected daily quote %q", out)
	}

	out = h.run("--json", "quote", "get", "--id", "1")
	if !strings.Contains(out, `"author": "Dijkstra"`) {
		t.Fatalf("unexpected quote json %q", out)
	}
}

func TestTaskCommands(t *testing.T) {
	h := newHarness(t)

	h.run("task", "add", "-n", "ship release", "-D", "2030-01-01 09:00:00", "-r", "7")
	h.run("task", "add", "-n", "write notes", "-d", "changelog", "-p", "1")
	if _, err := h.exec("task", "add", "-n", "orphan", "-p", "99"); NormalizeError(err).Kind != KindNotFound {
		t.Fatalf("expected not_found for missing parent, got %v", err)
	}

	out := h.run("task", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "ship release") || !strings.HasPrefix(lines[1], "  [ ] #2 write notes - changelog") {
		t.Fatalf("unexpected task list %q", out)
	}

	out = h.run("--json", "task", "done", "1")
	if !strings.Contains(out, `"status": "incomplete"`) || !strings.Contains(out, "2030-01-08") {
		t.Fatalf("expected renewed task, got %q", out)
	}
	out = h.run("--json", "task", "done", "2")
	if !strings.Contains(out, `"status": "complete"`) {
		t.Fatalf("expected completed task, got %q", out)
	}
}

func TestWebHistoryCommands(t *testing.T) {
	h := newHarness(t)

	out := h.run("--json", "web", "history", "list")
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty history, got %q", out)
	}
	if _, err := h.exec("web", "history", "list", "--from", "2026-02-01", "--to", "2026-01-01"); NormalizeError(err).Kind != KindValidation {
		t.Fatalf("expected validation error for inverted range, got %v", err)
	}
	if _, err := h.exec("--json", "web", "search", "golang"); NormalizeError(err).Kind != KindValidation {
		t.Fatalf("expected validation error without api key, got %v", err)
	}
	out = h.run("web", "history", "clear")
	if out != "Deleted: 0\n" {
		t.Fatalf("unexpected clear output %q", out)
	}
}

func TestGitAddCommitAndStatus(t *testing.T) {
	h := newHarness(t)
	repoDir := t.TempDir()
	if err := gitrepo.NewStore().Init(context.Background(), repoDir); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(repoDir, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	out := h.run("git", "status", repoDir)
	if out != "?? main.go\n" {
		t.Fatalf("unexpected status %q", out)
	}

	out = h.run("git", "add-commit", "-C", repoDir, "-c", "Initial import,add main")
	if !strings.HasPrefix(out, "Add 'main.go'\nCommit: ") {
		t.Fatalf("unexpected add-commit output %q", out)
	}
	if !strings.Contains(out, "Initial import\n\nUpdated: ") || !strings.Contains(out, "- add main\n") || !strings.Contains(out, "Files Changed:\nA  main.go\n") {
		t.Fatalf("unexpected commit message %q", out)
	}

	if out := h.run("git", "status", repoDir); out != "" {
		t.Fatalf("expected clean status, got %q", out)
	}
	if _, err := h.exec("git", "add-commit", "-C", repoDir); NormalizeError(err).Kind != KindConflict {
		t.Fatalf("expected conflict for empty commit, got %v", err)
	}
}

func TestGitListAndNew(t *testing.T) {
	h := newHarness(t)
	if _, err := h.exec("git", "list"); NormalizeError(err).Kind != KindNotFound {
		t.Fatalf("expected not_found for missing git dir, got %v", err)
	}

	out := h.run("--json", "git", "new", "demo")
	if !strings.Contains(out, filepath.Join("code", "User", "demo")) {
		t.Fatalf("unexpected new output %q", out)
	}
	out = h.run("git", "list")
	if !strings.HasSuffix(out, "User/demo\n") {
		t.Fatalf("unexpected list output %q", out)
	}
}

func TestResolveRepoRewritesSpecs(t *testing.T) {
	repoDir := t.TempDir()
	if err := gitrepo.NewStore().Init(context.Background(), repoDir); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	sub := filepath.Join(repoDir, "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	root, specs, err := resolveRepo(sub, "", nil)
	if err != nil {
		t.Fatalf("resolveRepo returned error: %v", err)
	}
	if root != repoDir || len(specs) != 1 || specs[0] != "pkg" {
		t.Fatalf("unexpected root %q specs %v", root, specs)
	}

	_, specs, err = resolveRepo(repoDir, "pkg", []string{"a.go", "*.txt"})
	if err != nil {
		t.Fatalf("resolveRepo returned error: %v", err)
	}
	if strings.Join(specs, " ") != "pkg/a.go pkg/*.txt" {
		t.Fatalf("unexpected specs %v", specs)
	}

	if _, _, err := resolveRepo(sub, "", []string{"../../outside"}); NormalizeError(err).Kind != KindRepository {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestWelcomeGreetsConfiguredName(t *testing.T) {
	h := newHarness(t)
	h.run("env", "set", "--git-name", "Grace")

	out := h.run("welcome")
	if !strings.HasPrefix(out, "Welcome Grace!\nToday is ") {
		t.Fatalf("unexpected greeting %q", out)
	}
}

func TestWelcomeMessageFormat(t *testing.T) {
	now := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	got := welcomeMessage(renderer{}, "Ada", now)
	want := "Welcome Ada!\nToday is Tuesday, March 05, 2024.\n\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
