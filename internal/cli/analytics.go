package cli

import (
	"fmt"
	"strings"

	"github.com/Ohseho81/autus-engine/internal/analytics"
	"github.com/spf13/cobra"
)

var analyticsSince string

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Query mission and stage performance analytics",
}

var analyticsVerdictsCmd = &cobra.Command{
	Use:   "verdicts",
	Short: "Verdict distribution per stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		rows, err := analytics.QueryVerdictDistribution(database, analyticsSince)
		if err != nil {
			return fmt.Errorf("verdict distribution: %w", err)
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No stage runs recorded.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-12s %-14s %s\n", "STAGE", "VERDICT", "COUNT")
		fmt.Fprintf(w, "%-12s %-14s %s\n", strings.Repeat("-", 12), strings.Repeat("-", 14), strings.Repeat("-", 5))
		for _, r := range rows {
			fmt.Fprintf(w, "%-12s %-14s %d\n", r.Stage, r.Verdict, r.Count)
		}
		return nil
	},
}

var analyticsIndicesCmd = &cobra.Command{
	Use:   "indices",
	Short: "Average K/I/Ω indices per stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		rows, err := analytics.QueryIndexAverages(database, analyticsSince)
		if err != nil {
			return fmt.Errorf("index averages: %w", err)
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No stage runs recorded.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-12s %-6s %-8s %-8s %s\n", "STAGE", "RUNS", "AVG K", "AVG I", "AVG Ω")
		for _, r := range rows {
			fmt.Fprintf(w, "%-12s %-6d %-8.2f %-8.2f %.2f\n", r.Stage, r.Count, r.AvgK, r.AvgI, r.AvgOmega)
		}
		return nil
	},
}

var analyticsStageDurationCmd = &cobra.Command{
	Use:   "stage-duration",
	Short: "Average and percentile durations per stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		rows, err := analytics.QueryStageDurations(database, analyticsSince)
		if err != nil {
			return fmt.Errorf("stage durations: %w", err)
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No stage runs recorded.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-12s %-6s %-10s %-10s %s\n", "STAGE", "RUNS", "AVG MS", "P50 MS", "P95 MS")
		for _, r := range rows {
			fmt.Fprintf(w, "%-12s %-6d %-10.0f %-10.0f %.0f\n", r.Stage, r.Count, r.Avg, r.P50, r.P95)
		}
		return nil
	},
}

var analyticsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Elimination rates by business category",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		rows, err := analytics.QueryEliminationByCategory(database, analyticsSince)
		if err != nil {
			return fmt.Errorf("elimination by category: %w", err)
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No stage runs recorded.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-20s %-10s %-12s %s\n", "CATEGORY", "MISSIONS", "ELIMINATED", "RATE")
		for _, r := range rows {
			fmt.Fprintf(w, "%-20s %-10d %-12d %.0f%%\n", r.Category, r.Missions, r.Eliminated, r.EliminatedPct)
		}
		return nil
	},
}

func init() {
	analyticsCmd.PersistentFlags().StringVar(&analyticsSince, "since", "", "Only include runs after this RFC3339 timestamp")

	analyticsCmd.AddCommand(analyticsVerdictsCmd)
	analyticsCmd.AddCommand(analyticsIndicesCmd)
	analyticsCmd.AddCommand(analyticsStageDurationCmd)
	analyticsCmd.AddCommand(analyticsCategoriesCmd)
}
