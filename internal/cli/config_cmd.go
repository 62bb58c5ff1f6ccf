// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - "medrec config": inspect and edit the configuration file.

package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/medrec/internal/config"
)

func configCmd(flags *GlobalFlags, streams Streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit configuration",
	}

	var showJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(*flags)
			if err != nil {
				return err
			}
			if showJSON {
				return NewJSONResponse("config show", cfg).Print(streams.Out)
			}
			return printConfig(streams, cfg, configPath(*flags))
		},
	}
	show.Flags().BoolVar(&showJSON, "json", false, "output as JSON")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := configPath(*flags)
			fmt.Fprintln(streams.Out, p)
			if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(streams.Err, "%s (file does not exist; run 'medrec config init')\n", DimStyle.Render("Note"))
			}
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := writableConfigPath(*flags)
			if err != nil {
				return err
			}
			if _, err := os.Stat(p); err == nil && !force {
				return &UsageError{Reason: "config file already exists: " + p, Example: "medrec config init --force"}
			}
			cfg := config.Default()
			cfg.SetDefaults()
			if err := config.SaveTOML(cfg, p); err != nil {
				return fmt.Errorf("%w: %w", ErrConfig, err)
			}
			fmt.Fprintf(streams.Out, "%s Wrote %s\n", SuccessStyle.Render("[OK]"), p)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one setting (e.g. storage.backend)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(*flags)
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return unknownKey(err)
			}
			fmt.Fprintln(streams.Out, value)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := writableConfigPath(*flags)
			if err != nil {
				return err
			}
			cfg, err := loadFileConfig(p)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return unknownKey(err)
			}
			cfg.SetDefaults()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%w: %w", ErrConfig, err)
			}
			if err := config.SaveTOML(cfg, p); err != nil {
				return fmt.Errorf("%w: %w", ErrConfig, err)
			}
			value, _ := cfg.Get(args[0])
			fmt.Fprintf(streams.Out, "%s %s = %v\n", SuccessStyle.Render("[OK]"), args[0], value)
			return nil
		},
	}

	cmd.AddCommand(show, path, initCmd, get, set)
	return cmd
}

// configPath is the file "config" subcommands read and write.
func configPath(flags GlobalFlags) string {
	if flags.ConfigPath != "" {
		return flags.ConfigPath
	}
	p, err := config.ConfigPathTOML()
	if err != nil {
		return "~/.medrec/config.toml"
	}
	return p
}

func writableConfigPath(flags GlobalFlags) (string, error) {
	p := configPath(flags)
	if strings.HasSuffix(p, ".json") {
		return "", &UsageError{Reason: "only TOML config files can be written: " + p}
	}
	return p, nil
}

// loadFileConfig reads p without environment overrides, so that set does
// not persist them. A missing file yields defaults.
func loadFileConfig(p string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(p); err == nil {
		if err := config.LoadTOML(cfg, p); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}
	return cfg, nil
}

func unknownKey(err error) error {
	return &UsageError{
		Reason:  err.Error(),
		Example: "valid keys: " + strings.Join(config.GetAllKeys(), ", "),
	}
}

func printConfig(streams Streams, cfg *config.Config, path string) error {
	out := streams.Out
	fmt.Fprintln(out, TitleStyle.Render("medrec Configuration"))

	keys := config.GetAllKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		return !strings.Contains(keys[i], ".") && strings.Contains(keys[j], ".")
	})

	section := ""
	for _, key := range keys {
		name := key
		if i := strings.LastIndex(key, "."); i >= 0 {
			if s := key[:i]; s != section {
				section = s
				fmt.Fprintf(out, "\n[%s]\n", section)
			}
			name = key[i+1:]
		}
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s%s\n", RenderLabel(name+":", 22), ValueStyle.Render(fmt.Sprint(value)))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, RenderSeparator(41))
	fmt.Fprintf(out, "Config file: %s\n", path)
	return nil
}
