package cli

import (
	"errors"
	"fmt"
	"io"

	commitapp "github.com/osvaldoandrade/shellcommander/internal/app/commit"
	envapp "github.com/osvaldoandrade/shellcommander/internal/app/env"
	ignoreapp "github.com/osvaldoandrade/shellcommander/internal/app/ignore"
	"github.com/osvaldoandrade/shellcommander/internal/app/paths"
	quoteapp "github.com/osvaldoandrade/shellcommander/internal/app/quote"
	repoapp "github.com/osvaldoandrade/shellcommander/internal/app/repo"
	searchapp "github.com/osvaldoandrade/shellcommander/internal/app/search"
	stageapp "github.com/osvaldoandrade/shellcommander/internal/app/stage"
	taskapp "github.com/osvaldoandrade/shellcommander/internal/app/task"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
	"github.com/osvaldoandrade/shellcommander/internal/infra/schema"
)

type ErrorKind string

const (
	KindInternal   ErrorKind = "internal"
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindRepository ErrorKind = "repository"
	KindTransport  ErrorKind = "transport"
)

const (
	ExitOK         = 0
	ExitInternal   = 1
	ExitInvalid    = 2
	ExitNotFound   = 3
	ExitConflict   = 4
	ExitRepository = 5
	ExitTransport  = 6
)

type ExitError struct {
	Code    int
	Kind    ErrorKind
	Message string
	Err     error
}

func (e ExitError) Error() string {
	return errorMessage(e)
}

func (e ExitError) Unwrap() error {
	return e.Err
}

func NormalizeError(err error) ExitError {
	if err == nil {
		return ExitError{Code: 0}
	}
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code == 0 {
			exitErr.Code = ExitInternal
		}
		return exitErr
	}

	switch {
	case errors.Is(err, quoteapp.ErrQuoteNotFound),
		errors.Is(err, quoteapp.ErrNoQuotes),
		errors.Is(err, taskapp.ErrTaskNotFound),
		errors.Is(err, taskapp.ErrParentNotFound),
		errors.Is(err, repoapp.ErrGitDirNotFound),
		errors.Is(err, ignoreapp.ErrUnknownTemplate):
		return ExitError{Code: ExitNotFound, Kind: KindNotFound, Err: err}
	case errors.Is(err, repoapp.ErrRepoExists),
		errors.Is(err, commitapp.ErrNothingToCommit):
		return ExitError{Code: ExitConflict, Kind: KindConflict, Err: err}
	case errors.Is(err, domain.ErrRepositoryAccess),
		errors.Is(err, domain.ErrIndexWrite),
		errors.Is(err, domain.ErrCommitCreate),
		errors.Is(err, domain.ErrPathUnresolved):
		return ExitError{Code: ExitRepository, Kind: KindRepository, Err: err}
	case errors.Is(err, domain.ErrCloneTransport),
		errors.Is(err, domain.ErrRemoteRequest):
		return ExitError{Code: ExitTransport, Kind: KindTransport, Err: err}
	case errors.Is(err, paths.ErrRepoPathRequired),
		errors.Is(err, repoapp.ErrRepoURLRequired),
		errors.Is(err, repoapp.ErrClonePathRequired),
		errors.Is(err, repoapp.ErrRepoNameRequired),
		errors.Is(err, repoapp.ErrGitDirRequired),
		errors.Is(err, commitapp.ErrAuthorRequired),
		errors.Is(err, stageapp.ErrInvalidMode),
		errors.Is(err, envapp.ErrNoSettings),
		errors.Is(err, envapp.ErrValueRequired),
		errors.Is(err, envapp.ErrUnknownSetting),
		errors.Is(err, ignoreapp.ErrTemplatesRequired),
		errors.Is(err, quoteapp.ErrQuoteRequired),
		errors.Is(err, quoteapp.ErrAuthorRequired),
		errors.Is(err, taskapp.ErrInvalidName),
		errors.Is(err, taskapp.ErrInvalidDescription),
		errors.Is(err, taskapp.ErrInvalidRepeat),
		errors.Is(err, taskapp.ErrInvalidDueDate),
		errors.Is(err, taskapp.ErrInvalidID),
		errors.Is(err, searchapp.ErrQueryRequired),
		errors.Is(err, searchapp.ErrInvalidDate),
		errors.Is(err, searchapp.ErrInvalidRange),
		errors.Is(err, searchapp.ErrResultsUnavailable),
		errors.Is(err, schema.ErrInvalidDocument):
		return ExitError{Code: ExitInvalid, Kind: KindValidation, Err: err}
	default:
		return ExitError{Code: ExitInternal, Kind: KindInternal, Err: err}
	}
}

func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return NormalizeError(err).Code
}

func writeCLIError(w io.Writer, exitErr ExitError, asJSON bool) error {
	if exitErr.Code == 0 {
		return nil
	}
	message := errorMessage(exitErr)
	if asJSON {
		payload := struct {
			Code    int    `json:"code"`
			Kind    string `json:"kind"`
			Message string `json:"message"`
		}{
			Code:    exitErr.Code,
			Kind:    string(exitErr.Kind),
			Message: message,
		}
		return writeJSON(w, payload)
	}

	ui := newRenderer(w, false)
	prefix := "Error"
	if exitErr.Kind != "" {
		prefix = fmt.Sprintf("Error (%s)", exitErr.Kind)
	}
	prefix = ui.err(prefix)
	_, err := fmt.Fprintf(w, "%s: %s\n", prefix, message)
	return err
}

func errorMessage(exitErr ExitError) string {
	if exitErr.Message != "" {
		return exitErr.Message
	}
	if exitErr.Err != nil {
		return exitErr.Err.Error()
	}
	return "unknown error"
}
