package gitrepo

import (
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// statusSources gives access to the three trees a status compares. head is
// nil on an unborn branch.
type statusSources struct {
	head *object.Tree
	idx  *index.Index
	fs   billy.Filesystem
}

func (s statusSources) headEntry(path string) (plumbing.Hash, filemode.FileMode, bool) {
	if s.head == nil {
		return plumbing.ZeroHash, 0, false
	}
	entry, err := s.head.FindEntry(path)
	if err != nil {
		return plumbing.ZeroHash, 0, false
	}
	return entry.Hash, entry.Mode, true
}

func (s statusSources) indexEntry(path string) (plumbing.Hash, filemode.FileMode, bool) {
	entry, err := s.idx.Entry(path)
	if err != nil {
		return plumbing.ZeroHash, 0, false
	}
	return entry.Hash, entry.Mode, true
}

func (s statusSources) worktreeMode(path string) (filemode.FileMode, bool) {
	info, err := s.fs.Lstat(path)
	if err != nil {
		return 0, false
	}
	mode, err := filemode.NewFromOSFileMode(info.Mode())
	if err != nil {
		return 0, false
	}
	return mode, true
}

func (s statusSources) worktreeHash(path string) (plumbing.Hash, bool) {
	info, err := s.fs.Lstat(path)
	if err != nil || info.IsDir() {
		return plumbing.ZeroHash, false
	}
	var content []byte
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := s.fs.Readlink(path)
		if err != nil {
			return plumbing.ZeroHash, false
		}
		content = []byte(target)
	} else {
		content, err = util.ReadFile(s.fs, path)
		if err != nil {
			return plumbing.ZeroHash, false
		}
	}
	return plumbing.ComputeHash(plumbing.BlobObject, content), true
}

// refineStatuses pairs exact-content renames on both sides of the status and
// turns modifications that change the kind of a file into type changes.
// statuses must be sorted by path; the result is sorted too.
func refineStatuses(statuses []domain.PathStatus, src statusSources) []domain.PathStatus {
	byPath := make(map[string]*domain.PathStatus, len(statuses))
	order := make([]string, 0, len(statuses))
	for i := range statuses {
		ps := statuses[i]
		byPath[ps.Path] = &ps
		order = append(order, ps.Path)
	}

	pairIndexRenames(byPath, order, src)
	pairWorktreeRenames(byPath, order, src)
	markTypeChanges(byPath, src)

	out := make([]domain.PathStatus, 0, len(byPath))
	for _, path := range order {
		if ps, ok := byPath[path]; ok {
			out = append(out, *ps)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// pairIndexRenames merges a path deleted from the index with a path added to
// it holding the same blob. The merged status lives at the new path.
func pairIndexRenames(byPath map[string]*domain.PathStatus, order []string, src statusSources) {
	added := make(map[plumbing.Hash][]string)
	for _, path := range order {
		ps := byPath[path]
		if !ps.Flags.Has(domain.IndexNew) {
			continue
		}
		if hash, _, ok := src.indexEntry(path); ok {
			added[hash] = append(added[hash], path)
		}
	}

	for _, oldPath := range order {
		ps, ok := byPath[oldPath]
		if !ok || ps.Flags != domain.IndexDeleted {
			continue
		}
		hash, _, ok := src.headEntry(oldPath)
		if !ok {
			continue
		}
		candidates := added[hash]
		if len(candidates) == 0 {
			continue
		}
		newPath := candidates[0]
		added[hash] = candidates[1:]

		target := byPath[newPath]
		target.Flags = target.Flags&^domain.IndexNew | domain.IndexRenamed
		target.HeadToIndex = &domain.DiffPaths{OldPath: oldPath, NewPath: newPath}
		delete(byPath, oldPath)
	}
}

// pairWorktreeRenames merges a tracked path missing from the worktree with an
// untracked path holding the content the index has for it. The merged status
// lives at the index path.
func pairWorktreeRenames(byPath map[string]*domain.PathStatus, order []string, src statusSources) {
	untracked := make(map[plumbing.Hash][]string)
	for _, path := range order {
		ps, ok := byPath[path]
		if !ok || !ps.Flags.IsUntracked() {
			continue
		}
		if hash, ok := src.worktreeHash(path); ok {
			untracked[hash] = append(untracked[hash], path)
		}
	}
	if len(untracked) == 0 {
		return
	}

	for _, oldPath := range order {
		ps, ok := byPath[oldPath]
		if !ok || !ps.Flags.Has(domain.WorktreeDeleted) {
			continue
		}
		hash, _, ok := src.indexEntry(oldPath)
		if !ok {
			continue
		}
		candidates := untracked[hash]
		if len(candidates) == 0 {
			continue
		}
		newPath := candidates[0]
		untracked[hash] = candidates[1:]

		ps.Flags = ps.Flags&^domain.WorktreeDeleted | domain.WorktreeRenamed
		ps.IndexToWorkdir = &domain.DiffPaths{OldPath: oldPath, NewPath: newPath}
		delete(byPath, newPath)
	}
}

func markTypeChanges(byPath map[string]*domain.PathStatus, src statusSources) {
	for path, ps := range byPath {
		if ps.Flags.Has(domain.IndexModified) {
			_, headMode, okHead := src.headEntry(path)
			_, indexMode, okIndex := src.indexEntry(path)
			if okHead && okIndex && modeKind(headMode) != modeKind(indexMode) {
				ps.Flags = ps.Flags&^domain.IndexModified | domain.IndexTypeChanged
			}
		}
		if ps.Flags.Has(domain.WorktreeModified) {
			_, indexMode, okIndex := src.indexEntry(path)
			wtMode, okWorktree := src.worktreeMode(path)
			if okIndex && okWorktree && modeKind(indexMode) != modeKind(wtMode) {
				ps.Flags = ps.Flags&^domain.WorktreeModified | domain.WorktreeTypeChanged
			}
		}
	}
}

// modeKind folds the executable bit away: only file kind changes count.
func modeKind(mode filemode.FileMode) filemode.FileMode {
	if mode == filemode.Executable || mode == filemode.Deprecated {
		return filemode.Regular
	}
	return mode
}
