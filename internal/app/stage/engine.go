package stage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/osvaldoandrade/shellcommander/internal/app/paths"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

const updateFilter = domain.WorktreeModified | domain.WorktreeNew

type Engine struct {
	opener IndexOpener
}

func NewEngine(opener IndexOpener) *Engine {
	return &Engine{opener: opener}
}

// Stage applies specs to the index of repoPath and writes the index once.
// Paths whose status cannot be read are skipped.
func (e *Engine) Stage(ctx context.Context, repoPath string, specs []string, mode domain.StagingMode) (domain.StagingResult, error) {
	if !mode.IsValid() {
		return domain.StagingResult{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	absPath, err := paths.NormalizeRepoPath(repoPath)
	if err != nil {
		return domain.StagingResult{}, err
	}

	idx, err := e.opener.OpenIndex(ctx, absPath)
	if err != nil {
		return domain.StagingResult{}, err
	}

	matched, err := idx.Match(ctx, normalizeSpecs(specs), mode)
	if err != nil {
		return domain.StagingResult{}, err
	}

	result := domain.StagingResult{AttemptedPaths: make([]string, 0, len(matched))}
	for _, path := range matched {
		flags, err := idx.PathStatus(ctx, path)
		if err != nil {
			slog.Warn("skip path with unresolved status", "path", path, "err", err)
			continue
		}
		if domain.IsAffected(flags) {
			result.AffectedCount++
		}
		if mode == domain.StagingUpdateOnly && !flags.Has(updateFilter) {
			continue
		}
		if err := idx.Stage(ctx, path); err != nil {
			return domain.StagingResult{}, err
		}
		result.AttemptedPaths = append(result.AttemptedPaths, path)
	}

	if err := idx.Write(ctx); err != nil {
		return domain.StagingResult{}, err
	}
	slog.Debug("index written", "repo", absPath, "staged", len(result.AttemptedPaths), "affected", result.AffectedCount)
	return result, nil
}

func normalizeSpecs(specs []string) []string {
	out := make([]string, 0, len(specs))
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		out = append(out, spec)
	}
	if len(out) == 0 {
		return []string{"."}
	}
	return out
}
