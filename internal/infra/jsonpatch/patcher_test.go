package jsonpatch

import (
	"context"
	"testing"

	envapp "github.com/osvaldoandrade/shellcommander/internal/app/env"
)

func TestApplyReplaceOps(t *testing.T) {
	doc := []byte(`{"git_name":"User","git_dir":"~/Code"}`)
	ops := []envapp.PatchOp{
		{Op: "replace", Path: "/git_name", Value: "Ada"},
		{Op: "replace", Path: "/git_dir", Value: "/src"},
	}

	out, err := (Patcher{}).Apply(context.Background(), doc, ops)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if string(out) != `{"git_name":"Ada","git_dir":"/src"}` {
		t.Fatalf("unexpected output: %s", string(out))
	}
}

func TestApplyWithoutOpsKeepsDocument(t *testing.T) {
	doc := []byte(`{"a":1}`)
	out, err := (Patcher{}).Apply(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if string(out) != string(doc) {
		t.Fatalf("expected %s, got %s", doc, out)
	}
}

func TestApplyRejectsMissingPath(t *testing.T) {
	doc := []byte(`{"a":1}`)
	ops := []envapp.PatchOp{{Op: "replace", Path: "/missing", Value: "x"}}
	if _, err := (Patcher{}).Apply(context.Background(), doc, ops); err == nil {
		t.Fatalf("expected error for missing path")
	}
}
