package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/osvaldoandrade/shellcommander/internal/app/paths"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

const shorthandHost = "https://github.com/"

type CloneTarget struct {
	URL  string
	Path string
}

type CloneService struct {
	cloner Cloner
	repo   domain.RepositoryContext
}

func NewCloneService(cloner Cloner, repo domain.RepositoryContext) *CloneService {
	return &CloneService{cloner: cloner, repo: repo}
}

// Target resolves where url is cloned: dir/<repo> when dir is given,
// otherwise <git dir>/<owner>/<repo>.
func (s *CloneService) Target(url, dir string) (CloneTarget, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return CloneTarget{}, ErrRepoURLRequired
	}
	url = expandShorthand(url)

	owner, name, err := splitRepoURL(url)
	if err != nil {
		return CloneTarget{}, err
	}

	var target string
	if dir = strings.TrimSpace(dir); dir != "" {
		target = filepath.Join(dir, name)
	} else {
		if strings.TrimSpace(s.repo.GitDir) == "" {
			return CloneTarget{}, ErrGitDirRequired
		}
		target = filepath.Join(s.repo.GitDir, owner, name)
	}

	absPath, err := paths.NormalizeRepoPath(target)
	if err != nil {
		return CloneTarget{}, err
	}
	return CloneTarget{URL: url, Path: absPath}, nil
}

func (s *CloneService) Clone(ctx context.Context, target CloneTarget, sink domain.ProgressSink) error {
	if strings.TrimSpace(target.URL) == "" {
		return ErrRepoURLRequired
	}
	if strings.TrimSpace(target.Path) == "" {
		return ErrClonePathRequired
	}
	return s.cloner.Clone(ctx, target.URL, target.Path, sink)
}

// expandShorthand turns "owner/repo" into a GitHub https url.
func expandShorthand(url string) string {
	if strings.Contains(url, "://") || strings.Contains(url, ":") || strings.HasPrefix(url, ".") || strings.HasPrefix(url, "/") {
		return url
	}
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return url
	}
	return shorthandHost + parts[0] + "/" + strings.TrimSuffix(parts[1], ".git") + ".git"
}

func splitRepoURL(url string) (string, string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(url), "/")
	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '/' || r == ':'
	})
	if len(parts) == 0 {
		return "", "", ErrClonePathRequired
	}

	name := strings.TrimSpace(strings.TrimSuffix(parts[len(parts)-1], ".git"))
	if name == "" || filepath.Base(name) != name {
		return "", "", fmt.Errorf("invalid clone dir %q: %w", name, ErrClonePathRequired)
	}

	owner := ""
	if len(parts) > 1 {
		owner = parts[len(parts)-2]
		if at := strings.LastIndex(owner, "@"); at >= 0 {
			owner = owner[at+1:]
		}
	}
	return owner, name, nil
}
