package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date.")
		return nil
	},
}

var dbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the database (destructive!)",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.Reset(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database reset.")
		return nil
	},
}

var dbEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent mission events",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		events, err := database.RecentEvents(limit)
		if err != nil {
			return fmt.Errorf("recent events: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No events recorded.")
			return nil
		}

		w := cmd.OutOrStdout()
		for _, e := range events {
			line := fmt.Sprintf("%s  %s  %s", e.Timestamp, e.MissionID, e.Event)
			if e.Stage != "" {
				line += "  [" + e.Stage + "]"
			}
			if e.Detail != "" {
				line += "  " + e.Detail
			}
			fmt.Fprintln(w, line)
		}
		return nil
	},
}

func init() {
	dbEventsCmd.Flags().Int("limit", 50, "Max events to show")

	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbResetCmd)
	dbCmd.AddCommand(dbEventsCmd)
}
