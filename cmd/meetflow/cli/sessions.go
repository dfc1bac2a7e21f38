package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/deepnoodle-ai/meetflow/session"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage scheduling sessions",
	Long:  "List and inspect stored scheduling sessions, including paused and failed ones.",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(errorStyle.Sprintf("Error: %v", err))
			os.Exit(1)
		}
		store, err := cfg.SessionStore()
		if err != nil {
			fmt.Println(errorStyle.Sprintf("Error: %v", err))
			os.Exit(1)
		}
		records, err := store.List(context.Background())
		if err != nil {
			fmt.Println(errorStyle.Sprintf("Error listing sessions: %v", err))
			os.Exit(1)
		}
		if len(records) == 0 {
			fmt.Println("No sessions found")
			return
		}
		for _, record := range records {
			status := statusStyle(record.Status).Sprint(record.Status)
			fmt.Printf("%s  %s  cursor=%s  updated=%s\n",
				record.ID, status, record.Cursor,
				record.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session's full state",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(errorStyle.Sprintf("Error: %v", err))
			os.Exit(1)
		}
		store, err := cfg.SessionStore()
		if err != nil {
			fmt.Println(errorStyle.Sprintf("Error: %v", err))
			os.Exit(1)
		}
		record, err := store.Load(context.Background(), args[0])
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				fmt.Println(errorStyle.Sprintf("No session found with ID %q", args[0]))
			} else {
				fmt.Println(errorStyle.Sprintf("Error: %v", err))
			}
			os.Exit(1)
		}
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			fmt.Println(errorStyle.Sprintf("Error: %v", err))
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(errorStyle.Sprintf("Error: %v", err))
			os.Exit(1)
		}
		store, err := cfg.SessionStore()
		if err != nil {
			fmt.Println(errorStyle.Sprintf("Error: %v", err))
			os.Exit(1)
		}
		if !ConfirmAction("delete", args[0]) {
			fmt.Println("Canceled")
			return
		}
		if err := store.Delete(context.Background(), args[0]); err != nil {
			fmt.Println(errorStyle.Sprintf("Error deleting session: %v", err))
			os.Exit(1)
		}
		fmt.Println(successStyle.Sprintf("Deleted session %s", args[0]))
	},
}

func statusStyle(status session.Status) *color.Color {
	switch status {
	case session.StatusCompleted:
		return successStyle
	case session.StatusFailed:
		return errorStyle
	case session.StatusWaitingForInput:
		return warningStyle
	default:
		return boldStyle
	}
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}
