package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osvaldoandrade/shellcommander/internal/app/paths"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
	"github.com/osvaldoandrade/shellcommander/internal/infra/configfile"
	"github.com/osvaldoandrade/shellcommander/internal/infra/gitrepo"
	"github.com/osvaldoandrade/shellcommander/internal/infra/sqlitestore"
	"github.com/osvaldoandrade/shellcommander/internal/platform"
)

// skipEnvironment marks commands that must run without loading the config
// document, so a broken document can still be inspected and reset.
const skipEnvironment = "shellcommander/skip-environment"

type RootOptions struct {
	ConfigPath  string
	JSONOutput  bool
	LogLevel    string
	LogFormat   string
	SignCommits bool
	SignKey     string
	FastDB      bool

	defaults domain.Environment
	config   *configfile.Store
	env      domain.Environment
	repo     domain.RepositoryContext
}

func newRootCmd() *cobra.Command {
	configDir := defaultConfigDir()
	opts := &RootOptions{
		ConfigPath:  envDefault("SHELLCOMMANDER_CONFIG", filepath.Join(configDir, configfile.FileName)),
		LogLevel:    envDefault("SHELLCOMMANDER_LOG_LEVEL", "warn"),
		LogFormat:   envDefault("SHELLCOMMANDER_LOG_FORMAT", "text"),
		SignCommits: envBoolDefault("SHELLCOMMANDER_GIT_SIGN", false),
		SignKey:     envDefault("SHELLCOMMANDER_GIT_SIGN_KEY", ""),
		FastDB:      envBoolDefault("SHELLCOMMANDER_DB_FAST", false),
		defaults:    domain.NewEnvironment(filepath.Join(configDir, configfile.DBFileName)),
	}
	cmd := &cobra.Command{
		Use:           "shellcommander",
		Short:         "Quality of life commands",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(opts.SignKey) != "" {
				opts.SignCommits = true
			}
			if _, err := platform.ConfigureLogger(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr()); err != nil {
				return err
			}
			store, err := configfile.NewStore(opts.ConfigPath, opts.defaults)
			if err != nil {
				return err
			}
			opts.config = store
			if skipsEnvironment(cmd) {
				return nil
			}
			return opts.loadEnvironment(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Path to the config document")
	cmd.PersistentFlags().BoolVar(&opts.JSONOutput, "json", false, "Emit JSON output")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error, off)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", opts.LogFormat, "Log format (text, json)")
	cmd.PersistentFlags().BoolVar(&opts.SignCommits, "sign", opts.SignCommits, "Sign git commits (requires gpg/ssh configuration)")
	cmd.PersistentFlags().StringVar(&opts.SignKey, "sign-key", opts.SignKey, "Signing key id for git commit signing")
	cmd.PersistentFlags().BoolVar(&opts.FastDB, "fast-db", opts.FastDB, "Relax SQLite durability (WAL, synchronous=NORMAL)")

	cmd.AddCommand(
		newEnvCmd(opts),
		newGitCmd(opts),
		newQuoteCmd(opts),
		newTaskCmd(opts),
		newWebCmd(opts),
		newWelcomeCmd(opts),
	)

	return cmd
}

// loadEnvironment reads the config document and builds the repository
// context shared by the git commands.
func (o *RootOptions) loadEnvironment(ctx context.Context) error {
	env, err := o.config.Load(ctx)
	if err != nil {
		return err
	}
	gitDir, err := paths.ExpandHome(env.GitDir)
	if err != nil {
		return err
	}
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working dir: %w", err)
	}

	o.env = env
	o.repo = domain.RepositoryContext{
		WorkDir: workDir,
		GitDir:  gitDir,
		Author:  domain.Identity{Name: env.GitName, Email: env.GitEmail},
	}
	return nil
}

func (o *RootOptions) openStore() (*sqlitestore.Store, error) {
	dbPath, err := paths.ExpandHome(o.env.ConnStr)
	if err != nil {
		return nil, err
	}
	return sqlitestore.OpenWithOptions(dbPath, sqlitestore.OpenOptions{Fast: o.FastDB})
}

func (o *RootOptions) gitStore() *gitrepo.Store {
	return gitrepo.NewStoreWithOptions(gitrepo.StoreOptions{
		SignCommits: o.SignCommits,
		SignKey:     o.SignKey,
	})
}

func skipsEnvironment(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipEnvironment] == "true" {
			return true
		}
		switch c.Name() {
		case "completion", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

func defaultConfigDir() string {
	dir, err := configfile.DefaultDir()
	if err != nil {
		return "."
	}
	return dir
}

func envDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envBoolDefault(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
