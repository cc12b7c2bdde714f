package configfile

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"

	envapp "github.com/osvaldoandrade/shellcommander/internal/app/env"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
	"github.com/osvaldoandrade/shellcommander/internal/infra/canonicaljson"
	"github.com/osvaldoandrade/shellcommander/internal/infra/jsonpatch"
	"github.com/osvaldoandrade/shellcommander/internal/infra/schema"
)

const (
	AppDirName = "shellcommander"
	FileName   = "config.json"
	DBFileName = "shellcommander.db"
)

//go:embed environment.schema.json
var environmentSchema []byte

// Store keeps the environment document as a canonical JSON file. Every
// document read or written is validated against the embedded schema.
type Store struct {
	path      string
	defaults  domain.Environment
	validator *schema.Validator
	patcher   jsonpatch.Patcher
	canon     canonicaljson.Canonicalizer
}

func NewStore(path string, defaults domain.Environment) (*Store, error) {
	if path == "" {
		return nil, errors.New("config path required")
	}
	validator, err := schema.Compile("environment.schema.json", environmentSchema)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, defaults: defaults, validator: validator}, nil
}

// DefaultDir is the per-user directory holding the config file and the
// default database.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the document, filling missing fields from the defaults. A
// missing file is created with the defaults.
func (s *Store) Load(ctx context.Context) (domain.Environment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Environment{}, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.write(ctx, s.defaults); err != nil {
			return domain.Environment{}, err
		}
		return s.defaults, nil
	}
	if err != nil {
		return domain.Environment{}, fmt.Errorf("read config: %w", err)
	}

	var current domain.Environment
	if err := json.Unmarshal(data, &current); err != nil {
		return domain.Environment{}, fmt.Errorf("%w: %s: %v", schema.ErrInvalidDocument, s.path, err)
	}
	current = current.WithDefaults(s.defaults)

	encoded, err := json.Marshal(current)
	if err != nil {
		return domain.Environment{}, fmt.Errorf("encode config: %w", err)
	}
	if err := s.validator.Validate(ctx, encoded); err != nil {
		return domain.Environment{}, fmt.Errorf("%s: %w", s.path, err)
	}
	return current, nil
}

// Patch applies ops to the stored document and writes the result.
func (s *Store) Patch(ctx context.Context, ops []envapp.PatchOp) (domain.Environment, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return domain.Environment{}, err
	}

	doc, err := json.Marshal(current)
	if err != nil {
		return domain.Environment{}, fmt.Errorf("encode config: %w", err)
	}
	patched, err := s.patcher.Apply(ctx, doc, ops)
	if err != nil {
		return domain.Environment{}, err
	}
	if err := s.validator.Validate(ctx, patched); err != nil {
		return domain.Environment{}, err
	}

	var updated domain.Environment
	if err := json.Unmarshal(patched, &updated); err != nil {
		return domain.Environment{}, fmt.Errorf("decode patched config: %w", err)
	}
	if err := s.write(ctx, updated); err != nil {
		return domain.Environment{}, err
	}
	return updated, nil
}

// write replaces the file atomically with the canonical form of env.
func (s *Store) write(ctx context.Context, env domain.Environment) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := s.validator.Validate(ctx, raw); err != nil {
		return err
	}
	data, err := s.canon.Document(ctx, raw)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close config: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
