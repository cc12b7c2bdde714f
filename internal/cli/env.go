package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	envapp "github.com/osvaldoandrade/shellcommander/internal/app/env"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

func newEnvCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "env",
		Short:       "Read and change the environment settings",
		RunE:        runHelp,
		Annotations: map[string]string{skipEnvironment: "true"},
	}
	cmd.AddCommand(
		newEnvGetCmd(opts),
		newEnvSetCmd(opts),
		newEnvResetCmd(opts),
		newEnvFilesCmd(opts),
	)
	return cmd
}

func newEnvService(opts *RootOptions) *envapp.Service {
	return envapp.NewService(opts.config, opts.defaults)
}

func newEnvGetCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "get [key...]",
		Short:     "Show settings (all when no key is given)",
		ValidArgs: envKeyNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseEnvKeys(args)
			if err != nil {
				return err
			}
			settings, err := newEnvService(opts).Get(cmd.Context(), keys)
			if err != nil {
				return err
			}
			return writeSettings(cmd, settings, opts.JSONOutput)
		},
	}
}

func newEnvSetCmd(opts *RootOptions) *cobra.Command {
	values := make(map[domain.EnvKey]*string, len(domain.EnvKeys))
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed := make(map[domain.EnvKey]string)
			for _, key := range domain.EnvKeys {
				if cmd.Flags().Changed(flagName(key)) {
					changed[key] = *values[key]
				}
			}
			settings, err := newEnvService(opts).Set(cmd.Context(), changed)
			if err != nil {
				return err
			}
			return writeSettings(cmd, settings, opts.JSONOutput)
		},
	}
	for _, key := range domain.EnvKeys {
		values[key] = cmd.Flags().String(flagName(key), "", key.Label())
	}
	return cmd
}

func newEnvResetCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "reset [key...]",
		Short:     "Restore settings to their defaults (all when no key is given)",
		ValidArgs: envKeyNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseEnvKeys(args)
			if err != nil {
				return err
			}
			settings, err := newEnvService(opts).Reset(cmd.Context(), keys)
			if err != nil {
				return err
			}
			return writeSettings(cmd, settings, opts.JSONOutput)
		},
	}
}

func newEnvFilesCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "Show where the config document and database live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := newEnvService(opts).Files(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.JSONOutput {
				return writeJSON(out, files)
			}
			ui := newRenderer(out, false)
			if err := writeKV(out, ui, "Config", files.Config); err != nil {
				return err
			}
			return writeKV(out, ui, "Database", files.Database)
		},
	}
}

func writeSettings(cmd *cobra.Command, settings []envapp.Setting, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, settings)
	}
	ui := newRenderer(out, false)
	for _, setting := range settings {
		value := setting.Value
		if value == "" {
			value = ui.dim("(unset)")
		}
		if err := writeKV(out, ui, setting.Label, value); err != nil {
			return err
		}
	}
	return nil
}

func parseEnvKeys(args []string) ([]domain.EnvKey, error) {
	keys := make([]domain.EnvKey, 0, len(args))
	for _, arg := range args {
		key, err := domain.ParseEnvKey(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", envapp.ErrUnknownSetting, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func flagName(key domain.EnvKey) string {
	return strings.ReplaceAll(string(key), "_", "-")
}

func envKeyNames() []string {
	names := make([]string, 0, len(domain.EnvKeys))
	for _, key := range domain.EnvKeys {
		names = append(names, flagName(key))
	}
	return names
}
