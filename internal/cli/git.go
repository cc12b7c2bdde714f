package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	commitapp "github.com/osvaldoandrade/shellcommander/internal/app/commit"
	ignoreapp "github.com/osvaldoandrade/shellcommander/internal/app/ignore"
	repoapp "github.com/osvaldoandrade/shellcommander/internal/app/repo"
	stageapp "github.com/osvaldoandrade/shellcommander/internal/app/stage"
	statusapp "github.com/osvaldoandrade/shellcommander/internal/app/status"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
	"github.com/osvaldoandrade/shellcommander/internal/infra/filesystem"
	"github.com/osvaldoandrade/shellcommander/internal/infra/gitrepo"
	"github.com/osvaldoandrade/shellcommander/internal/infra/ignoreapi"
	"github.com/osvaldoandrade/shellcommander/internal/platform"
)

func newGitCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git",
		Short: "Git repo interactions",
		RunE:  runHelp,
	}
	cmd.AddCommand(
		newGitNewCmd(opts),
		newGitListCmd(opts),
		newGitStatusCmd(opts),
		newGitAddCommitCmd(opts),
		newGitCloneCmd(opts),
		newGitIgnoreCmd(opts),
	)
	return cmd
}

func newGitNewCmd(opts *RootOptions) *cobra.Command {
	var ignores string
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a repository under <git dir>/<author>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ignoreapi.New(opts.env.GitIgnoreURL)
			if err != nil {
				return err
			}
			service := repoapp.NewInitService(opts.gitStore(), client, filesystem.Files{}, opts.repo)

			var path string
			spin := spinnerEnabled(cmd.ErrOrStderr(), opts.JSONOutput)
			label := newRenderer(cmd.ErrOrStderr(), opts.JSONOutput).accent("Creating repository")
			err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), spin, label, func() error {
				var err error
				path, err = service.Init(cmd.Context(), repoapp.InitOptions{
					Name:    args[0],
					Ignores: parseCommaList(ignores),
				})
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.JSONOutput {
				return writeJSON(out, map[string]string{"path": path})
			}
			ui := newRenderer(out, false)
			return writeKV(out, ui, "Created", ui.ok(path))
		},
	}
	cmd.Flags().StringVarP(&ignores, "ignore", "i", "", "Comma-separated ignore templates for the .gitignore")
	return cmd
}

func newGitListCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the repositories in the git dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := repoapp.NewListService(filesystem.Files{}, opts.repo)
			root, repos, err := service.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.JSONOutput {
				return writeJSON(out, struct {
					Root  string   `json:"root"`
					Repos []string `json:"repos"`
				}{Root: root, Repos: repos})
			}
			ui := newRenderer(out, false)
			if err := writeKV(out, ui, "Path", root); err != nil {
				return err
			}
			if len(repos) == 0 {
				_, err := fmt.Fprintln(out, ui.dim("(no repositories)"))
				return err
			}
			return writeLines(out, repos)
		},
	}
}

func newGitStatusCmd(opts *RootOptions) *cobra.Command {
	var ignored bool
	cmd := &cobra.Command{
		Use:   "status [dir]",
		Short: "Show the short status of a repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRepo(opts.repo.WorkDir, firstArg(args), nil)
			if err != nil {
				return err
			}
			report, err := statusapp.NewService(opts.gitStore()).Report(cmd.Context(), root, statusapp.Options{IncludeIgnored: ignored})
			if err != nil {
				return err
			}
			return writeStatusReport(cmd, report, opts.JSONOutput)
		},
	}
	cmd.Flags().BoolVar(&ignored, "ignored", false, "Include ignored paths")
	return cmd
}

func newGitAddCommitCmd(opts *RootOptions) *cobra.Command {
	var changes []string
	var update bool
	var dir string
	cmd := &cobra.Command{
		Use:   "add-commit [pathspec...]",
		Short: "Stage changes and commit them with a generated message",
		Long: `Stage the matching paths (the current directory by default), then commit
them. The first change note becomes the headline and the rest are listed
under "Changes:"; without notes the headline is the timestamp. The message
always ends with the short status of the committed files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, specs, err := resolveRepo(opts.repo.WorkDir, dir, args)
			if err != nil {
				return err
			}
			mode := domain.StagingAddAll
			if update {
				mode = domain.StagingUpdateOnly
			}

			store := opts.gitStore()
			service := commitapp.NewAddCommitService(
				stageapp.NewEngine(store),
				statusapp.NewService(store),
				store,
				platform.RealClock{},
				opts.repo,
			)
			result, err := service.AddCommit(cmd.Context(), commitapp.AddCommitRequest{
				RepoPath: root,
				Specs:    specs,
				Changes:  changes,
				Mode:     mode,
			})
			if err != nil {
				return err
			}
			return writeAddCommitResult(cmd, result, opts.JSONOutput)
		},
	}
	cmd.Flags().StringSliceVarP(&changes, "changes", "c", nil, "Change notes; the first one is the headline")
	cmd.Flags().BoolVarP(&update, "update", "u", false, "Only stage tracked paths (like git add --update)")
	cmd.Flags().StringVarP(&dir, "dir", "C", "", "Run as if started in this directory")
	return cmd
}

func newGitCloneCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clone <repo> [dir]",
		Short: "Clone into <git dir>/<owner>/<repo> or <dir>/<repo>",
		Long: `Clone a repository. "owner/repo" is expanded to a GitHub https URL.
Without a directory the clone lands in <git dir>/<owner>/<repo>.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := repoapp.NewCloneService(opts.gitStore(), opts.repo)
			target, err := service.Target(args[0], secondArg(args))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.JSONOutput {
				if err := service.Clone(cmd.Context(), target, discardSink{}); err != nil {
					return err
				}
				return writeJSON(out, map[string]string{"url": target.URL, "path": target.Path})
			}

			if _, err := fmt.Fprintf(out, "Cloning into: %s\n", target.Path); err != nil {
				return err
			}
			progress := repoapp.NewProgressAggregator(out, platform.TerminalWidth(out))
			err = service.Clone(cmd.Context(), target, progress)
			fmt.Fprintln(out)
			return err
		},
	}
}

func newGitIgnoreCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignore",
		Short: "Fetch .gitignore templates",
		RunE:  runHelp,
	}
	cmd.AddCommand(newGitIgnoreListCmd(opts), newGitIgnoreFetchCmd(opts))
	return cmd
}

func newIgnoreService(opts *RootOptions) (*ignoreapp.Service, error) {
	client, err := ignoreapi.New(opts.env.GitIgnoreURL)
	if err != nil {
		return nil, err
	}
	return ignoreapp.NewService(client, filesystem.Files{}), nil
}

func newGitIgnoreListCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [filter]",
		Short: "List the available templates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newIgnoreService(opts)
			if err != nil {
				return err
			}
			var names []string
			spin := spinnerEnabled(cmd.ErrOrStderr(), opts.JSONOutput)
			label := newRenderer(cmd.ErrOrStderr(), opts.JSONOutput).dim("Fetching templates")
			err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), spin, label, func() error {
				var err error
				names, err = service.List(cmd.Context(), firstArg(args))
				return err
			})
			if err != nil {
				return err
			}
			if opts.JSONOutput {
				return writeJSON(cmd.OutOrStdout(), names)
			}
			return writeLines(cmd.OutOrStdout(), names)
		},
	}
}

func newGitIgnoreFetchCmd(opts *RootOptions) *cobra.Command {
	var createFile bool
	var dir string
	cmd := &cobra.Command{
		Use:   "fetch <template...>",
		Short: "Print or write a .gitignore built from templates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newIgnoreService(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			spin := spinnerEnabled(cmd.ErrOrStderr(), opts.JSONOutput)
			label := newRenderer(cmd.ErrOrStderr(), opts.JSONOutput).dim("Fetching templates")

			if createFile {
				if dir == "" {
					dir = opts.repo.WorkDir
				}
				var path string
				err := withSpinner(cmd.Context(), cmd.ErrOrStderr(), spin, label, func() error {
					var err error
					path, err = service.WriteFile(cmd.Context(), args, dir)
					return err
				})
				if err != nil {
					return err
				}
				if opts.JSONOutput {
					return writeJSON(out, map[string]string{"path": path})
				}
				ui := newRenderer(out, false)
				return writeKV(out, ui, "Wrote", ui.ok(path))
			}

			var text string
			err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), spin, label, func() error {
				var err error
				text, err = service.Fetch(cmd.Context(), args)
				return err
			})
			if err != nil {
				return err
			}
			if opts.JSONOutput {
				return writeJSON(out, map[string]string{"gitignore": text})
			}
			_, err = fmt.Fprint(out, text)
			return err
		},
	}
	cmd.Flags().BoolVarP(&createFile, "create-file", "f", false, "Write the result to .gitignore instead of printing it")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory for --create-file (defaults to the working dir)")
	return cmd
}

func writeStatusReport(cmd *cobra.Command, report statusapp.Report, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, struct {
			Path      string   `json:"path"`
			Lines     []string `json:"lines"`
			Untracked []string `json:"untracked"`
		}{Path: report.Path, Lines: report.Lines(), Untracked: report.Untracked})
	}
	ui := newRenderer(out, false)
	for _, line := range report.Lines() {
		if _, err := fmt.Fprintf(out, "%s%s\n", ui.statusCode(line[:2]), line[2:]); err != nil {
			return err
		}
	}
	return nil
}

func writeAddCommitResult(cmd *cobra.Command, result commitapp.AddCommitResult, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, struct {
			Staged   []string `json:"staged"`
			Affected int      `json:"affected"`
			Hash     string   `json:"hash"`
			Message  string   `json:"message"`
		}{
			Staged:   result.Staging.AttemptedPaths,
			Affected: result.Staging.AffectedCount,
			Hash:     result.Hash,
			Message:  result.Message.String(),
		})
	}
	ui := newRenderer(out, false)
	for _, path := range result.Staging.AttemptedPaths {
		if _, err := fmt.Fprintf(out, "Add '%s'\n", path); err != nil {
			return err
		}
	}
	if err := writeKV(out, ui, "Commit", ui.accent(result.Hash)); err != nil {
		return err
	}
	_, err := fmt.Fprint(out, "\n"+result.Message.String())
	return err
}

// resolveRepo finds the worktree containing dir (the working dir when empty)
// and rewrites specs, given relative to that dir, relative to the root.
// No specs stage the starting directory.
func resolveRepo(workDir, dir string, specs []string) (string, []string, error) {
	base := workDir
	if strings.TrimSpace(dir) != "" {
		base = dir
		if !filepath.IsAbs(base) {
			base = filepath.Join(workDir, base)
		}
	}
	root, err := gitrepo.FindRoot(base)
	if err != nil {
		return "", nil, err
	}
	if len(specs) == 0 {
		specs = []string{"."}
	}

	out := make([]string, 0, len(specs))
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		abs := spec
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(base, spec)
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			return "", nil, fmt.Errorf("%w: %s is outside %s", domain.ErrRepositoryAccess, spec, root)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return root, out, nil
}

type discardSink struct{}

func (discardSink) OnEvent(domain.ProgressEvent) {}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func secondArg(args []string) string {
	if len(args) < 2 {
		return ""
	}
	return args[1]
}
