package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	commitapp "github.com/osvaldoandrade/shellcommander/internal/app/commit"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// Commit records the current index on top of HEAD and returns the new
// commit hash. HEAD, or the branch it points to, is advanced.
func (s *Store) Commit(ctx context.Context, repoPath, message string, author domain.Identity) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.options.SignCommits {
		return s.commitSigned(ctx, repoPath, message, author)
	}

	_, wt, err := openWorktree(repoPath)
	if err != nil {
		return "", err
	}

	sig := &object.Signature{Name: author.Name, Email: author.Email, When: time.Now()}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		if errors.Is(err, git.ErrEmptyCommit) {
			return "", commitapp.ErrNothingToCommit
		}
		return "", fmt.Errorf("%w: %v", domain.ErrCommitCreate, err)
	}
	return hash.String(), nil
}

// commitSigned delegates to the git binary so the configured gpg or ssh
// signing program is used.
func (s *Store) commitSigned(ctx context.Context, repoPath, message string, author domain.Identity) (string, error) {
	args := []string{"-C", repoPath, "commit", "--quiet", "--file=-"}
	if s.options.SignKey != "" {
		args = append(args, "-S"+s.options.SignKey)
	} else {
		args = append(args, "-S")
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME="+author.Name,
		"GIT_AUTHOR_EMAIL="+author.Email,
		"GIT_COMMITTER_NAME="+author.Name,
		"GIT_COMMITTER_EMAIL="+author.Email,
	)
	cmd.Stdin = strings.NewReader(message)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%w: git commit: %v: %s", domain.ErrCommitCreate, err, msg)
		}
		return "", fmt.Errorf("%w: git commit: %v", domain.ErrCommitCreate, err)
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", domain.ErrRepositoryAccess, repoPath, err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: read HEAD: %v", domain.ErrCommitCreate, err)
	}
	return head.Hash().String(), nil
}
