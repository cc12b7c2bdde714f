package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"

	stageapp "github.com/osvaldoandrade/shellcommander/internal/app/stage"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// OpenIndex loads the index and a status snapshot of repoPath. The snapshot
// is taken once; PathStatus answers from it.
func (s *Store) OpenIndex(ctx context.Context, repoPath string) (stageapp.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, wt, err := openWorktree(repoPath)
	if err != nil {
		return nil, err
	}

	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("%w: read index: %v", domain.ErrRepositoryAccess, err)
	}

	st, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("%w: read status: %v", domain.ErrRepositoryAccess, err)
	}

	return &worktreeIndex{repo: repo, wt: wt, idx: idx, status: st}, nil
}

type worktreeIndex struct {
	repo   *git.Repository
	wt     *git.Worktree
	idx    *index.Index
	status git.Status
}

// Match expands pathspecs against the index and, in add-all mode, the
// untracked paths of the worktree. A spec matches a path exactly, as a
// directory prefix or as a glob.
func (w *worktreeIndex) Match(ctx context.Context, specs []string, mode domain.StagingMode) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := make(map[string]struct{}, len(w.idx.Entries)+len(w.status))
	for _, entry := range w.idx.Entries {
		candidates[entry.Name] = struct{}{}
	}
	for name, fs := range w.status {
		if fs.Worktree == git.Untracked && mode != domain.StagingAddAll {
			continue
		}
		candidates[name] = struct{}{}
	}

	normalized := make([]string, 0, len(specs))
	for _, spec := range specs {
		normalized = append(normalized, normalizeSpec(spec))
	}

	matched := make([]string, 0, len(candidates))
	for name := range candidates {
		for _, spec := range normalized {
			ok, err := matchSpec(spec, name)
			if err != nil {
				return nil, err
			}
			if ok {
				matched = append(matched, name)
				break
			}
		}
	}
	sort.Strings(matched)
	return matched, nil
}

func (w *worktreeIndex) PathStatus(ctx context.Context, name string) (domain.StatusFlags, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	fs, ok := w.status[name]
	if !ok {
		return domain.StatusCurrent, nil
	}
	return statusFlags(fs), nil
}

// Stage copies the worktree state of name into the in-memory index: the
// content is written as a blob, or the entry is dropped when the file is gone.
func (w *worktreeIndex) Stage(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fs := w.wt.Filesystem
	info, err := fs.Lstat(name)
	if errors.Is(err, os.ErrNotExist) {
		if _, err := w.idx.Remove(name); err != nil && !errors.Is(err, index.ErrEntryNotFound) {
			return fmt.Errorf("%w: remove %s: %v", domain.ErrIndexWrite, name, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: stat %s: %v", domain.ErrIndexWrite, name, err)
	}
	if info.IsDir() {
		return nil
	}

	mode, err := filemode.NewFromOSFileMode(info.Mode())
	if err != nil {
		return fmt.Errorf("%w: mode of %s: %v", domain.ErrIndexWrite, name, err)
	}

	var content io.Reader
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := fs.Readlink(name)
		if err != nil {
			return fmt.Errorf("%w: readlink %s: %v", domain.ErrIndexWrite, name, err)
		}
		content = strings.NewReader(target)
	} else {
		f, err := fs.Open(name)
		if err != nil {
			return fmt.Errorf("%w: open %s: %v", domain.ErrIndexWrite, name, err)
		}
		defer f.Close()
		content = f
	}

	hash, err := w.writeBlob(content, info.Size())
	if err != nil {
		return fmt.Errorf("%w: write blob %s: %v", domain.ErrIndexWrite, name, err)
	}

	entry, err := w.idx.Entry(name)
	if err != nil {
		if !errors.Is(err, index.ErrEntryNotFound) {
			return fmt.Errorf("%w: read entry %s: %v", domain.ErrIndexWrite, name, err)
		}
		entry = w.idx.Add(name)
	}
	entry.Hash = hash
	entry.Mode = mode
	entry.ModifiedAt = info.ModTime()
	entry.Size = uint32(info.Size())
	return nil
}

// Write persists the in-memory index.
func (w *worktreeIndex) Write(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.repo.Storer.SetIndex(w.idx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexWrite, err)
	}
	return nil
}

func (w *worktreeIndex) writeBlob(r io.Reader, size int64) (plumbing.Hash, error) {
	obj := w.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(size)

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, err
	}
	if err := writer.Close(); err != nil {
		return plumbing.ZeroHash, err
	}
	return w.repo.Storer.SetEncodedObject(obj)
}

func normalizeSpec(spec string) string {
	spec = filepath.ToSlash(strings.TrimSpace(spec))
	spec = strings.TrimPrefix(spec, "./")
	spec = strings.TrimSuffix(spec, "/")
	if spec == "" {
		return "."
	}
	return spec
}

func matchSpec(spec, name string) (bool, error) {
	if spec == "." || spec == "*" || spec == name || strings.HasPrefix(name, spec+"/") {
		return true, nil
	}
	ok, err := path.Match(spec, name)
	if err != nil {
		return false, fmt.Errorf("invalid pathspec %q: %w", spec, err)
	}
	return ok, nil
}
