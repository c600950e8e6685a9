// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kisti-mcp CLI. The serve command
// runs the MCP tool server on stdio; the other commands inspect and exercise
// the same tools from a shell.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kisti-mcp/internal/logging"
	"github.com/pdiddy/kisti-mcp/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfg    types.Config
	logger = zerolog.Nop()
)

// rootCmd is the base command for the kisti-mcp CLI.
var rootCmd = &cobra.Command{
	Use:   "kisti-mcp",
	Short: "MCP tool server for the KISTI ScienceON, NTIS and DataON APIs",
	Long: `kisti-mcp exposes keyword search over three KISTI platforms as MCP tools:
ScienceON (papers, patents, reports), NTIS (national R&D projects and
classification recommendation) and DataON (research datasets).

Credentials are read from the environment or from the env file (default .env).
A platform whose credentials are incomplete stays registered and answers every
call with a message naming the missing variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c

		log, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Console)
		if err != nil {
			return err
		}
		logger = log
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug().Str("path", used).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./kisti-mcp.yaml or ~/.config/kisti-mcp/kisti-mcp.yaml)")
	rootCmd.PersistentFlags().String("env-file", "", "env file consulted for credentials (default .env)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("env_file", rootCmd.PersistentFlags().Lookup("env-file"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kisti-mcp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kisti-mcp"))
		}
	}

	setDefaults(viper.GetViper(), types.DefaultConfig())
	viper.SetEnvPrefix("KISTI_MCP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.console", d.Log.Console)
	v.SetDefault("env_file", d.EnvFile)
	v.SetDefault("max_results", d.MaxResults)
	v.SetDefault("scienceon.base_url", d.ScienceON.BaseURL)
	v.SetDefault("ntis.base_url", d.NTIS.BaseURL)
	v.SetDefault("dataon.base_url", d.DataON.BaseURL)
}

func loadConfig() (types.Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (types.Config, error) {
	c := types.DefaultConfig()
	if err := v.Unmarshal(&c); err != nil {
		return c, errors.Wrap(err, "decoding configuration")
	}
	if c.HTTP.UserAgent == "" || c.HTTP.UserAgent == types.DefaultConfig().HTTP.UserAgent {
		c.HTTP.UserAgent = "kisti-mcp/" + version
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
