// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lexdraft CLI.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lexdraft/internal/logging"
	"github.com/pdiddy/lexdraft/internal/secrets"
	"github.com/pdiddy/lexdraft/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Set in PersistentPreRunE for every subcommand.
var (
	cfg           types.Config
	logger        *slog.Logger
	loadedSecrets secrets.Set
)

var rootCmd = &cobra.Command{
	Use:   "lexdraft",
	Short: "Draft, edit, and export GCC legal documents in English and Arabic",
	Long: `lexdraft renders document templates, drafts documents with a generative
text service, runs interactive editing sessions with undo and redo, and
assembles finished drafts into page descriptions for the PDF renderer.

Drafts are YAML files holding the content and the request that produced
them, so every stage can be run on its own: generate, edit, export.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c

		logger, err = logging.New(cfg.Log, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lexdraft.yaml or ~/.config/lexdraft/lexdraft.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func setDefaults() {
	viper.SetDefault("ai.model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("ai.api_key", "")
	viper.SetDefault("ai.endpoint", "")
	viper.SetDefault("ai.max_tokens", 8192)
	viper.SetDefault("ai.timeout", 2*time.Minute)
	viper.SetDefault("editing.commit_threshold", 40)
	viper.SetDefault("export.output_dir", "output/documents")
	viper.SetDefault("export.format", string(types.ExportJSON))
	viper.SetDefault("export.lines_per_page", 45)
	viper.SetDefault("export.chars_per_line", 90)
	viper.SetDefault("archive.path", "drafts/lexdraft.db")
	viper.SetDefault("templates.dir", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lexdraft")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lexdraft"))
		}
	}

	viper.SetEnvPrefix("LEXDRAFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged viper settings.
func loadConfig() (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	switch c.Export.Format {
	case types.ExportJSON, types.ExportYAML:
	default:
		return c, fmt.Errorf("export.format %q: use json or yaml", c.Export.Format)
	}
	return c, nil
}

// apiKey returns the generative-service key from config, environment, or
// the secrets directory.
func apiKey() (string, error) {
	key := loadedSecrets.Resolve(secrets.AnthropicAPIKey, cfg.AI.APIKey)
	if key == "" {
		return "", errors.New("no API key: set ai.api_key, LEXDRAFT_AI_API_KEY, or .secrets/" + secrets.AnthropicAPIKey)
	}
	return key, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
