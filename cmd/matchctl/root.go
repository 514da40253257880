package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"internship-backend/internal/analysis"
	"internship-backend/internal/bootstrap"
	"internship-backend/internal/shared/config"
	"internship-backend/internal/shared/telemetry"
)

const app = "matchctl"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "matchctl runs resume extraction and match analysis from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			format := "console"
			if viper.GetBool("json") {
				format = "json"
			}
			level := "warn"
			if viper.GetBool("debug") {
				level = "debug"
			}
			return telemetry.ConfigureStderr(format, level)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is matchctl.yaml in current directory, if present)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("provider", "", "upstream provider: gateway or gemini")
	rootCmd.PersistentFlags().String("model", "", "model name")
	rootCmd.PersistentFlags().Int("timeout", 0, "upstream timeout in seconds (0 = none)")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// loadConfig starts from the service environment and applies flag or config file overrides.
func loadConfig() config.Config {
	cfg := config.Load()
	if v := strings.TrimSpace(viper.GetString("provider")); v != "" {
		cfg.LLMProvider = strings.ToLower(v)
	}
	if v := strings.TrimSpace(viper.GetString("model")); v != "" {
		cfg.LLMModel = v
	}
	if v := viper.GetInt("timeout"); v > 0 {
		cfg.LLMTimeoutSeconds = v
	}
	if v := strings.TrimSpace(viper.GetString("api-key")); v != "" {
		cfg.LLMAPIKey = v
		cfg.GeminiAPIKey = v
	}
	return cfg
}

func newGateway(ctx context.Context) (*analysis.Gateway, error) {
	client, err := bootstrap.BuildLLM(ctx, loadConfig())
	if err != nil {
		return nil, err
	}
	return analysis.NewGateway(client)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
