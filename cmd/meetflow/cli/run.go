package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/deepnoodle-ai/meetflow/config"
	"github.com/deepnoodle-ai/meetflow/session"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan the inbox and schedule meetings",
	Long: "Start a new scheduling session: scan recent email threads, extract " +
		"meeting details, check for calendar conflicts, and schedule the " +
		"meetings. If conflicts are found the session pauses; resolve it with " +
		"'meetflow resume'.",
	Run: func(cmd *cobra.Command, args []string) {
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
		sessionID, stream, err := eng.Start(ctx)
		if err != nil {
			fmt.Println(errorStyle.Sprintf("Error: %v", err))
			os.Exit(1)
		}
		for event := range stream.Channel() {
			printEvent(event)
		}
		reportOutcome(ctx, cfg, sessionID)
	},
}

// reportOutcome prints follow-up instructions based on where the session
// landed once its stream closed.
func reportOutcome(ctx context.Context, cfg *config.Config, sessionID string) {
	store, err := cfg.SessionStore()
	if err != nil {
		return
	}
	record, err := store.Load(ctx, sessionID)
	if err != nil {
		return
	}
	switch record.Status {
	case session.StatusWaitingForInput:
		fmt.Println()
		fmt.Println(warningStyle.Sprint("The session is paused waiting for your input."))
		fmt.Printf("Resolve the conflicts with:\n  meetflow resume %s --message \"your instructions\"\n", sessionID)
	case session.StatusFailed:
		fmt.Println()
		fmt.Println(errorStyle.Sprint("The session failed. Partial state is retained for inspection:"))
		fmt.Printf("  meetflow sessions show %s\n", sessionID)
	}
}
