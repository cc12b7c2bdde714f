package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func runArgs(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	config := filepath.Join(t.TempDir(), "config.json")
	var out, errOut bytes.Buffer
	code := run(context.Background(), append([]string{"--config", config}, args...), strings.NewReader(""), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunSuccessReturnsZero(t *testing.T) {
	code, out, errOut := runArgs(t, "env", "get", "git-name")
	if code != ExitOK {
		t.Fatalf("expected exit 0, got %d (%s)", code, errOut)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected output")
	}
}

func TestRunHelpReturnsZero(t *testing.T) {
	code, _, _ := runArgs(t, "--help")
	if code != ExitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
}

func TestRunValidationErrorText(t *testing.T) {
	code, _, errOut := runArgs(t, "env", "get", "nope")
	if code != ExitInvalid {
		t.Fatalf("expected exit %d, got %d", ExitInvalid, code)
	}
	if !strings.HasPrefix(errOut, "Error (validation): ") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

func TestRunValidationErrorJSON(t *testing.T) {
	code, _, errOut := runArgs(t, "--json", "env", "get", "nope")
	if code != ExitInvalid {
		t.Fatalf("expected exit %d, got %d", ExitInvalid, code)
	}
	if !strings.Contains(errOut, `"kind": "validation"`) {
		t.Fatalf("expected JSON error, got %q", errOut)
	}
}
