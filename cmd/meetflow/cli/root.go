// Package cli implements the meetflow command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/meetflow/config"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	llmProvider string
	llmModel    string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "meetflow",
	Short: "Schedule meetings from your inbox",
	Long: "Meetflow scans recent email threads, extracts meeting details with " +
		"a language model, checks your calendar for conflicts, and schedules " +
		"the meetings. Runs that hit conflicts pause for your input and can " +
		"be resumed later.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a meetflow config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&llmProvider, "provider", "", "LLM provider to use ('openai' or 'googleai')")
	rootCmd.PersistentFlags().StringVarP(&llmModel, "model", "m", "", "Model to use (e.g. 'gpt-4o')")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level to use (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// loadConfig resolves the effective configuration: the config file if one
// was given (or meetflow.yaml if present), with flag overrides applied.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configPath != "":
		parsed, err := config.ParseFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error loading config %q: %w", configPath, err)
		}
		cfg = parsed
	default:
		if _, err := os.Stat("meetflow.yaml"); err == nil {
			parsed, err := config.ParseFile("meetflow.yaml")
			if err != nil {
				return nil, fmt.Errorf("error loading meetflow.yaml: %w", err)
			}
			cfg = parsed
		} else {
			cfg = config.Default()
		}
	}
	if llmProvider != "" {
		cfg.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.Model = llmModel
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
