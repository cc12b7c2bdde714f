package commit

import (
	"context"
	"strings"

	"github.com/osvaldoandrade/shellcommander/internal/app/status"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

type AddCommitRequest struct {
	RepoPath string
	Specs    []string
	Changes  []string
	Mode     domain.StagingMode
}

type AddCommitResult struct {
	Staging domain.StagingResult
	Message domain.CommitMessage
	Hash    string
}

type AddCommitService struct {
	stager    Stager
	reporter  StatusReporter
	committer Committer
	clock     Clock
	repo      domain.RepositoryContext
}

func NewAddCommitService(stager Stager, reporter StatusReporter, committer Committer, clock Clock, repo domain.RepositoryContext) *AddCommitService {
	return &AddCommitService{
		stager:    stager,
		reporter:  reporter,
		committer: committer,
		clock:     clock,
		repo:      repo,
	}
}

// AddCommit stages specs, then commits the staged changes with a composed
// message. A failed commit leaves the index staged.
func (s *AddCommitService) AddCommit(ctx context.Context, req AddCommitRequest) (AddCommitResult, error) {
	author := s.repo.Author
	if strings.TrimSpace(author.Name) == "" || strings.TrimSpace(author.Email) == "" {
		return AddCommitResult{}, ErrAuthorRequired
	}

	repoPath := strings.TrimSpace(req.RepoPath)
	if repoPath == "" {
		repoPath = s.repo.WorkDir
	}
	mode := req.Mode
	if mode == "" {
		mode = domain.StagingAddAll
	}

	staged, err := s.stager.Stage(ctx, repoPath, req.Specs, mode)
	if err != nil {
		return AddCommitResult{}, err
	}

	report, err := s.reporter.Report(ctx, repoPath, status.Options{})
	if err != nil {
		return AddCommitResult{Staging: staged}, err
	}
	if !hasStagedChanges(report.Entries) {
		return AddCommitResult{Staging: staged}, ErrNothingToCommit
	}

	msg := Compose(req.Changes, s.clock.Now(), report.Entries)
	hash, err := s.committer.Commit(ctx, report.Path, msg.String(), author)
	if err != nil {
		return AddCommitResult{Staging: staged, Message: msg}, err
	}

	return AddCommitResult{
		Staging: staged,
		Message: msg,
		Hash:    hash,
	}, nil
}

func hasStagedChanges(entries []domain.StatusEntry) bool {
	for _, entry := range entries {
		switch entry.IndexCode {
		case ' ', '?', '!':
		default:
			return true
		}
	}
	return false
}
