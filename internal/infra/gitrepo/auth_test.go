package gitrepo

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestCredentialsHTTPSWithoutTokenIsAnonymous(t *testing.T) {
	auth, err := credentials{getenv: envMap(nil)}.forURL("https://github.com/rust-lang/rust.git")
	if err != nil {
		t.Fatalf("forURL returned error: %v", err)
	}
	if auth != nil {
		t.Fatalf("expected no auth, got %T", auth)
	}
}

func TestCredentialsHTTPSPrefersAppToken(t *testing.T) {
	creds := credentials{getenv: envMap(map[string]string{
		envGitToken: "app-token",
		envGHToken:  "gh-token",
		envGitUser:  "ada",
	})}

	auth, err := creds.forURL("https://github.com/a/b.git")
	if err != nil {
		t.Fatalf("forURL returned error: %v", err)
	}
	basic, ok := auth.(*http.BasicAuth)
	if !ok {
		t.Fatalf("expected basic auth, got %T", auth)
	}
	if basic.Username != "ada" || basic.Password != "app-token" {
		t.Fatalf("unexpected credentials %+v", basic)
	}
}

func TestCredentialsHTTPSDefaultsTokenUser(t *testing.T) {
	auth, err := credentials{getenv: envMap(map[string]string{envGHCLIToken: "cli"})}.forURL("https://github.com/a/b")
	if err != nil {
		t.Fatalf("forURL returned error: %v", err)
	}
	basic := auth.(*http.BasicAuth)
	if basic.Username != tokenUser || basic.Password != "cli" {
		t.Fatalf("unexpected credentials %+v", basic)
	}
}

func TestCredentialsSSHWithoutAgentIsNil(t *testing.T) {
	auth, err := credentials{getenv: envMap(nil)}.forURL("git@github.com:a/b.git")
	if err != nil {
		t.Fatalf("forURL returned error: %v", err)
	}
	if auth != nil {
		t.Fatalf("expected no auth without agent, got %T", auth)
	}
}

func TestCredentialsLocalPathIsNil(t *testing.T) {
	auth, err := credentials{getenv: envMap(map[string]string{envGitToken: "x"})}.forURL(t.TempDir())
	if err != nil {
		t.Fatalf("forURL returned error: %v", err)
	}
	if auth != nil {
		t.Fatalf("expected no auth for local path, got %T", auth)
	}
}
