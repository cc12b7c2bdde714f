package env

import (
	"context"
	"fmt"
	"strings"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

type Setting struct {
	Key   domain.EnvKey `json:"key"`
	Label string        `json:"label"`
	Value string        `json:"value"`
}

type Files struct {
	Config   string `json:"config"`
	Database string `json:"database"`
}

// optional keys may be set to an empty value.
var optional = map[domain.EnvKey]bool{
	domain.EnvGoogleSearchAPIKey:   true,
	domain.EnvGoogleSearchEngineID: true,
}

type Service struct {
	store    Store
	defaults domain.Environment
}

func NewService(store Store, defaults domain.Environment) *Service {
	return &Service{store: store, defaults: defaults}
}

// Get returns the requested settings in key order; no keys means all.
func (s *Service) Get(ctx context.Context, keys []domain.EnvKey) ([]Setting, error) {
	current, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return settings(current, selected(keys)), nil
}

func (s *Service) Set(ctx context.Context, values map[domain.EnvKey]string) ([]Setting, error) {
	if len(values) == 0 {
		return nil, ErrNoSettings
	}
	for key := range values {
		if !key.IsValid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
		}
	}

	ops := make([]PatchOp, 0, len(values))
	keys := make([]domain.EnvKey, 0, len(values))
	for _, key := range domain.EnvKeys {
		value, ok := values[key]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" && !optional[key] {
			return nil, ErrValueRequired
		}
		ops = append(ops, replaceOp(key, value))
		keys = append(keys, key)
	}

	updated, err := s.store.Patch(ctx, ops)
	if err != nil {
		return nil, err
	}
	return settings(updated, keys), nil
}

// Reset restores the given keys to their defaults; no keys resets everything.
func (s *Service) Reset(ctx context.Context, keys []domain.EnvKey) ([]Setting, error) {
	keys = selected(keys)
	ops := make([]PatchOp, 0, len(keys))
	for _, key := range keys {
		ops = append(ops, replaceOp(key, s.defaults.Get(key)))
	}

	updated, err := s.store.Patch(ctx, ops)
	if err != nil {
		return nil, err
	}
	return settings(updated, keys), nil
}

func (s *Service) Files(ctx context.Context) (Files, error) {
	current, err := s.store.Load(ctx)
	if err != nil {
		return Files{}, err
	}
	return Files{Config: s.store.Path(), Database: current.ConnStr}, nil
}

func replaceOp(key domain.EnvKey, value string) PatchOp {
	return PatchOp{Op: "replace", Path: "/" + string(key), Value: value}
}

func selected(keys []domain.EnvKey) []domain.EnvKey {
	if len(keys) == 0 {
		return domain.EnvKeys
	}
	return keys
}

func settings(current domain.Environment, keys []domain.EnvKey) []Setting {
	out := make([]Setting, 0, len(keys))
	for _, key := range keys {
		out = append(out, Setting{Key: key, Label: key.Label(), Value: current.Get(key)})
	}
	return out
}
