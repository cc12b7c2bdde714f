package domain

import "strings"

// StatusFlags records the index-side and worktree-side state of one path.
// The zero value means the path is current on both sides.
type StatusFlags uint16

const StatusCurrent StatusFlags = 0

const (
	IndexNew StatusFlags = 1 << iota
	IndexModified
	IndexDeleted
	IndexRenamed
	IndexTypeChanged
	WorktreeNew
	WorktreeModified
	WorktreeDeleted
	WorktreeRenamed
	WorktreeTypeChanged
	Ignored
)

const (
	indexMask    = IndexNew | IndexModified | IndexDeleted | IndexRenamed | IndexTypeChanged
	worktreeMask = WorktreeNew | WorktreeModified | WorktreeDeleted | WorktreeRenamed | WorktreeTypeChanged
)

func (f StatusFlags) Has(flag StatusFlags) bool {
	return f&flag != 0
}

func (f StatusFlags) IsCurrent() bool {
	return f == StatusCurrent
}

func (f StatusFlags) Index() StatusFlags {
	return f & indexMask
}

func (f StatusFlags) Worktree() StatusFlags {
	return f & worktreeMask
}

// IsUntracked reports a path that only exists in the worktree.
func (f StatusFlags) IsUntracked() bool {
	return f == WorktreeNew
}

func (f StatusFlags) String() string {
	if f.IsCurrent() {
		return "CURRENT"
	}
	names := []struct {
		flag StatusFlags
		name string
	}{
		{IndexNew, "INDEX_NEW"},
		{IndexModified, "INDEX_MODIFIED"},
		{IndexDeleted, "INDEX_DELETED"},
		{IndexRenamed, "INDEX_RENAMED"},
		{IndexTypeChanged, "INDEX_TYPECHANGE"},
		{WorktreeNew, "WT_NEW"},
		{WorktreeModified, "WT_MODIFIED"},
		{WorktreeDeleted, "WT_DELETED"},
		{WorktreeRenamed, "WT_RENAMED"},
		{WorktreeTypeChanged, "WT_TYPECHANGE"},
		{Ignored, "IGNORED"},
	}
	parts := make([]string, 0, 2)
	for _, n := range names {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, " | ")
}

// DiffPaths is the old/new path pair of one side of a rename-aware diff.
// Either side may be empty when the diff does not carry it.
type DiffPaths struct {
	OldPath string
	NewPath string
}

// PathStatus is the raw status of one changed path as reported by the
// repository, before classification.
type PathStatus struct {
	Path           string
	Flags          StatusFlags
	HeadToIndex    *DiffPaths
	IndexToWorkdir *DiffPaths
}

type SubmoduleState uint8

const (
	SubmoduleNewCommits SubmoduleState = 1 << iota
	SubmoduleIndexModified
	SubmoduleWorktreeModified
	SubmoduleUntracked
)

func (s SubmoduleState) Has(flag SubmoduleState) bool {
	return s&flag != 0
}

// StatusEntry is a classified path ready to be rendered as a porcelain line.
type StatusEntry struct {
	IndexCode    byte
	WorktreeCode byte
	OldPath      string
	MidPath      string
	NewPath      string
	Annotation   string
}

func (e StatusEntry) Code() string {
	return string([]byte{e.IndexCode, e.WorktreeCode})
}

// String renders the entry in the short status format:
// "RR old mid new", "R<w> old new", "<i>R old new" or "<i><w> path".
func (e StatusEntry) String() string {
	var b strings.Builder
	b.WriteString(e.Code())
	b.WriteByte(' ')
	switch {
	case e.IndexCode == 'R' && e.WorktreeCode == 'R':
		b.WriteString(e.OldPath)
		b.WriteByte(' ')
		b.WriteString(e.MidPath)
		b.WriteByte(' ')
		b.WriteString(e.NewPath)
	case e.IndexCode == 'R', e.WorktreeCode == 'R':
		b.WriteString(e.OldPath)
		b.WriteByte(' ')
		b.WriteString(e.NewPath)
	default:
		b.WriteString(e.OldPath)
	}
	b.WriteString(e.Annotation)
	return b.String()
}
