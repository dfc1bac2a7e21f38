package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/deepnoodle-ai/meetflow"
	"github.com/deepnoodle-ai/meetflow/session"
	"github.com/spf13/cobra"
)

var resumeMessage string

var resumeCmd = &cobra.Command{
	Use:   "resume <session-id>",
	Short: "Resume a paused session with conflict resolution input",
	Long: "Resume a session that paused on calendar conflicts. The message is " +
		"free text describing how to resolve them, e.g. \"move the standup to " +
		"4pm and cancel the rest\".",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessionID := args[0]
		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(errorStyle.Sprintf("Error: %v", err))
			os.Exit(1)
		}
		eng, err := cfg.Engine()
		if err != nil {
			fmt.Println(errorStyle.Sprintf("Error: %v", err))
			os.Exit(1)
		}
		ctx := context.Background()
		stream, err := eng.Resume(ctx, sessionID, resumeMessage)
		if err != nil {
			var invalidState *meetflow.InvalidStateError
			switch {
			case errors.Is(err, session.ErrNotFound):
				fmt.Println(errorStyle.Sprintf("No session found with ID %q", sessionID))
			case errors.Is(err, meetflow.ErrEmptyResolution):
				fmt.Println(errorStyle.Sprint("A resolution message is required, pass it with --message"))
			case errors.As(err, &invalidState):
				fmt.Println(errorStyle.Sprintf("Session %q is not waiting for input (status: %s)", sessionID, invalidState.Status))
			default:
				fmt.Println(errorStyle.Sprintf("Error: %v", err))
			}
			os.Exit(1)
		}
		for event := range stream.Channel() {
			printEvent(event)
		}
		reportOutcome(ctx, cfg, sessionID)
	},
}

func init() {
	resumeCmd.Flags().StringVarP(&resumeMessage, "message", "M", "", "How to resolve the conflicts (required)")
	resumeCmd.MarkFlagRequired("message")
}
