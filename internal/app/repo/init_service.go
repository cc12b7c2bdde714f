package repo

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/osvaldoandrade/shellcommander/internal/app/paths"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

const ignoreFileName = ".gitignore"

type InitService struct {
	initializer Initializer
	ignores     IgnoreFetcher
	files       FileWriter
	repo        domain.RepositoryContext
}

type InitOptions struct {
	Name    string
	Ignores []string
}

func NewInitService(initializer Initializer, ignores IgnoreFetcher, files FileWriter, repo domain.RepositoryContext) *InitService {
	return &InitService{
		initializer: initializer,
		ignores:     ignores,
		files:       files,
		repo:        repo,
	}
}

// Init creates <git dir>/<author>/<name> as a new repository and writes a
// .gitignore built from the requested templates. It returns the repo path.
func (s *InitService) Init(ctx context.Context, opts InitOptions) (string, error) {
	name := strings.TrimSpace(opts.Name)
	if name == "" || filepath.Base(name) != name {
		return "", ErrRepoNameRequired
	}
	if strings.TrimSpace(s.repo.GitDir) == "" {
		return "", ErrGitDirRequired
	}

	absPath, err := paths.NormalizeRepoPath(filepath.Join(s.repo.GitDir, s.repo.Author.Name, name))
	if err != nil {
		return "", err
	}

	var ignoreText string
	if templates := compact(opts.Ignores); len(templates) > 0 {
		ignoreText, err = s.ignores.Fetch(ctx, templates)
		if err != nil {
			return "", err
		}
	}

	if err := s.initializer.Init(ctx, absPath); err != nil {
		return "", err
	}

	if ignoreText != "" {
		if err := s.files.WriteFile(filepath.Join(absPath, ignoreFileName), []byte(ignoreText)); err != nil {
			return "", err
		}
	}

	return absPath, nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
