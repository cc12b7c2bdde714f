package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"

	statusapp "github.com/osvaldoandrade/shellcommander/internal/app/status"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// PathStatuses returns every changed path sorted by name. Ignored paths are
// only reported when opts.IncludeIgnored is set.
func (s *Store) PathStatuses(ctx context.Context, repoPath string, opts statusapp.Options) ([]domain.PathStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, wt, err := openWorktree(repoPath)
	if err != nil {
		return nil, err
	}

	st, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("%w: read status: %v", domain.ErrRepositoryAccess, err)
	}

	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("%w: read index: %v", domain.ErrRepositoryAccess, err)
	}
	head, err := headTree(repo)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PathStatus, 0, len(st))
	for path, fs := range st {
		ps := pathStatus(path, fs)
		if ps.Flags.IsCurrent() {
			continue
		}
		out = append(out, ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	out = refineStatuses(out, statusSources{head: head, idx: idx, fs: wt.Filesystem})

	if opts.IncludeIgnored {
		ignored, err := ignoredPaths(ctx, wt.Filesystem, trackedPaths(idx))
		if err != nil {
			return nil, err
		}
		out = append(out, ignored...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// SubmoduleStates reports the state of every initialised submodule keyed by
// its path in the superproject.
func (s *Store) SubmoduleStates(ctx context.Context, repoPath string) (map[string]domain.SubmoduleState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, wt, err := openWorktree(repoPath)
	if err != nil {
		return nil, err
	}

	subs, err := wt.Submodules()
	if err != nil {
		return nil, fmt.Errorf("%w: read submodules: %v", domain.ErrRepositoryAccess, err)
	}

	states := make(map[string]domain.SubmoduleState, len(subs))
	for _, sub := range subs {
		st, err := sub.Status()
		if err != nil {
			slog.Debug("skip submodule status", "path", sub.Config().Path, "err", err)
			continue
		}
		if st.Current.IsZero() {
			continue
		}

		var state domain.SubmoduleState
		if !st.IsClean() {
			state |= domain.SubmoduleNewCommits
		}
		state |= submoduleWorktreeState(sub)
		states[st.Path] = state
	}
	return states, nil
}

func headTree(repo *git.Repository) (*object.Tree, error) {
	ref, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read HEAD: %v", domain.ErrRepositoryAccess, err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("%w: read HEAD commit: %v", domain.ErrRepositoryAccess, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("%w: read HEAD tree: %v", domain.ErrRepositoryAccess, err)
	}
	return tree, nil
}

func submoduleWorktreeState(sub *git.Submodule) domain.SubmoduleState {
	repo, err := sub.Repository()
	if err != nil {
		return 0
	}
	wt, err := repo.Worktree()
	if err != nil {
		return 0
	}
	st, err := wt.Status()
	if err != nil {
		return 0
	}

	var state domain.SubmoduleState
	for _, fs := range st {
		switch {
		case fs.Worktree == git.Untracked:
			state |= domain.SubmoduleUntracked
		case fs.Staging != git.Unmodified:
			state |= domain.SubmoduleIndexModified
		case fs.Worktree != git.Unmodified:
			state |= domain.SubmoduleWorktreeModified
		}
	}
	return state
}

func pathStatus(path string, fs *git.FileStatus) domain.PathStatus {
	ps := domain.PathStatus{Path: path, Flags: statusFlags(fs)}

	if ps.Flags.IsUntracked() {
		ps.IndexToWorkdir = &domain.DiffPaths{OldPath: path, NewPath: path}
		return ps
	}
	if ps.Flags.Index() != 0 {
		oldPath := path
		if fs.Staging == git.Renamed && fs.Extra != "" {
			oldPath = fs.Extra
		}
		ps.HeadToIndex = &domain.DiffPaths{OldPath: oldPath, NewPath: path}
	}
	if ps.Flags.Worktree() != 0 {
		oldPath := path
		if fs.Worktree == git.Renamed && fs.Extra != "" {
			oldPath = fs.Extra
		}
		ps.IndexToWorkdir = &domain.DiffPaths{OldPath: oldPath, NewPath: path}
	}
	return ps
}

func statusFlags(fs *git.FileStatus) domain.StatusFlags {
	if fs.Staging == git.Untracked && fs.Worktree == git.Untracked {
		return domain.WorktreeNew
	}

	var flags domain.StatusFlags
	switch fs.Staging {
	case git.Added:
		flags |= domain.IndexNew
	case git.Modified, git.Copied, git.UpdatedButUnmerged:
		flags |= domain.IndexModified
	case git.Deleted:
		flags |= domain.IndexDeleted
	case git.Renamed:
		flags |= domain.IndexRenamed
	}
	switch fs.Worktree {
	case git.Untracked:
		flags |= domain.WorktreeNew
	case git.Modified, git.UpdatedButUnmerged:
		flags |= domain.WorktreeModified
	case git.Deleted:
		flags |= domain.WorktreeDeleted
	case git.Renamed:
		flags |= domain.WorktreeRenamed
	}
	return flags
}

// trackedPaths holds every index entry and each of its parent directories.
func trackedPaths(idx *index.Index) map[string]bool {
	tracked := make(map[string]bool, len(idx.Entries))
	for _, entry := range idx.Entries {
		name := entry.Name
		for name != "." && name != "" && !tracked[name] {
			tracked[name] = true
			name = path.Dir(name)
		}
	}
	return tracked
}

// ignoredPaths walks the worktree for untracked paths matched by .gitignore.
// An ignored directory is reported once with a trailing slash.
func ignoredPaths(ctx context.Context, fs billy.Filesystem, tracked map[string]bool) ([]domain.PathStatus, error) {
	patterns, err := gitignore.ReadPatterns(fs, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: read ignore rules: %v", domain.ErrRepositoryAccess, err)
	}
	if len(patterns) == 0 {
		return nil, nil
	}
	matcher := gitignore.NewMatcher(patterns)

	var out []domain.PathStatus
	err = util.Walk(fs, "", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == "" {
			return nil
		}
		path = filepath.ToSlash(path)
		if path == ".git" {
			return filepath.SkipDir
		}
		if !matcher.Match(strings.Split(path, "/"), info.IsDir()) {
			return nil
		}
		if tracked[path] {
			return nil
		}

		name := path
		if info.IsDir() {
			name += "/"
		}
		out = append(out, domain.PathStatus{
			Path:           name,
			Flags:          domain.Ignored,
			IndexToWorkdir: &domain.DiffPaths{OldPath: name, NewPath: name},
		})
		if info.IsDir() {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walk worktree: %v", domain.ErrRepositoryAccess, err)
	}
	return out, nil
}
