package domain

import (
	"fmt"
	"strings"
)

type StagingMode string

const (
	// StagingAddAll stages every matched path, untracked ones included.
	StagingAddAll StagingMode = "add-all"
	// StagingUpdateOnly only touches tracked paths, like "git add --update".
	StagingUpdateOnly StagingMode = "update-only"
)

func (mode StagingMode) IsValid() bool {
	return mode == StagingAddAll || mode == StagingUpdateOnly
}

func ParseStagingMode(value string) (StagingMode, error) {
	parsed := StagingMode(strings.TrimSpace(value))
	if parsed == "" {
		return StagingAddAll, nil
	}
	if !parsed.IsValid() {
		return "", fmt.Errorf("invalid staging mode: %s", value)
	}
	return parsed, nil
}

type StagingResult struct {
	AttemptedPaths []string
	AffectedCount  int
}

// IsAffected reports whether the worktree side of flags records a change
// that staging would carry into the index.
func IsAffected(flags StatusFlags) bool {
	return flags.Has(WorktreeNew | WorktreeModified | WorktreeRenamed | WorktreeTypeChanged | WorktreeDeleted)
}
