package status

import (
	"fmt"
	"log/slog"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

type flagCode struct {
	flag domain.StatusFlags
	code byte
}

// First match wins.
var indexCodes = []flagCode{
	{domain.IndexNew, 'A'},
	{domain.IndexModified, 'M'},
	{domain.IndexDeleted, 'D'},
	{domain.IndexRenamed, 'R'},
	{domain.IndexTypeChanged, 'T'},
}

var worktreeCodes = []flagCode{
	{domain.WorktreeNew, '?'},
	{domain.WorktreeModified, 'M'},
	{domain.WorktreeDeleted, 'D'},
	{domain.WorktreeRenamed, 'R'},
	{domain.WorktreeTypeChanged, 'T'},
}

type submoduleNote struct {
	state domain.SubmoduleState
	text  string
}

var submoduleNotes = []submoduleNote{
	{domain.SubmoduleNewCommits, " (new commits)"},
	{domain.SubmoduleIndexModified | domain.SubmoduleWorktreeModified, " (modified content)"},
	{domain.SubmoduleUntracked, " (untracked content)"},
}

func pickCode(flags domain.StatusFlags, table []flagCode) byte {
	for _, entry := range table {
		if flags.Has(entry.flag) {
			return entry.code
		}
	}
	return ' '
}

type Classifier struct {
	submodules SubmoduleLookup
}

// NewClassifier returns a classifier; submodules may be nil.
func NewClassifier(submodules SubmoduleLookup) *Classifier {
	return &Classifier{submodules: submodules}
}

// Classify maps one raw path status to a porcelain entry. ok is false when the
// entry is suppressed. ErrPathUnresolved is returned when the rendering form
// needs a path that neither diff carries.
func (c *Classifier) Classify(ps domain.PathStatus) (domain.StatusEntry, bool, error) {
	if ps.Flags.IsCurrent() {
		return domain.StatusEntry{}, false, nil
	}

	indexCode := pickCode(ps.Flags, indexCodes)
	worktreeCode := pickCode(ps.Flags, worktreeCodes)
	if worktreeCode == '?' && indexCode == ' ' {
		indexCode = '?'
	}
	if ps.Flags.Has(domain.Ignored) {
		indexCode, worktreeCode = '!', '!'
	}
	if indexCode == '?' && worktreeCode == '?' {
		return domain.StatusEntry{}, false, nil
	}

	// Path slots: a and b come from head-to-index, falling back to the
	// index-to-workdir old path; w is the index-to-workdir new path.
	var a, b, w string
	if d := ps.HeadToIndex; d != nil {
		a, b = d.OldPath, d.NewPath
	}
	if d := ps.IndexToWorkdir; d != nil {
		if a == "" {
			a = d.OldPath
		}
		if b == "" {
			b = d.OldPath
		}
		w = d.NewPath
	}

	entry := domain.StatusEntry{
		IndexCode:    indexCode,
		WorktreeCode: worktreeCode,
		Annotation:   c.annotation(w),
	}
	switch {
	case indexCode == 'R' && worktreeCode == 'R':
		entry.OldPath, entry.MidPath, entry.NewPath = a, b, w
	case indexCode == 'R':
		entry.OldPath, entry.NewPath = a, b
	case worktreeCode == 'R':
		entry.OldPath, entry.NewPath = a, w
	default:
		entry.OldPath = a
	}
	if err := requirePaths(entry); err != nil {
		return domain.StatusEntry{}, false, fmt.Errorf("%s: %w", ps.Path, err)
	}
	return entry, true, nil
}

func (c *Classifier) annotation(path string) string {
	if c.submodules == nil || path == "" {
		return ""
	}
	state, ok := c.submodules.SubmoduleState(path)
	if !ok {
		return ""
	}
	for _, note := range submoduleNotes {
		if state.Has(note.state) {
			return note.text
		}
	}
	return ""
}

func requirePaths(entry domain.StatusEntry) error {
	if entry.OldPath == "" {
		return domain.ErrPathUnresolved
	}
	twoPath := entry.IndexCode == 'R' || entry.WorktreeCode == 'R'
	if twoPath && entry.NewPath == "" {
		return domain.ErrPathUnresolved
	}
	if entry.IndexCode == 'R' && entry.WorktreeCode == 'R' && entry.MidPath == "" {
		return domain.ErrPathUnresolved
	}
	return nil
}

// ClassifyAll classifies statuses in order, dropping suppressed entries and
// skipping paths that cannot be resolved.
func (c *Classifier) ClassifyAll(statuses []domain.PathStatus) []domain.StatusEntry {
	entries := make([]domain.StatusEntry, 0, len(statuses))
	for _, ps := range statuses {
		entry, ok, err := c.Classify(ps)
		if err != nil {
			slog.Warn("skip unresolved status entry", "path", ps.Path, "err", err)
			continue
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
