package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Ohseho81/autus-engine/internal/domain"
	"github.com/Ohseho81/autus-engine/internal/engine"
	"github.com/Ohseho81/autus-engine/internal/indices"
	"github.com/Ohseho81/autus-engine/internal/workflow"
	"github.com/spf13/cobra"
)

var missionCmd = &cobra.Command{
	Use:   "mission",
	Short: "Create, run, and inspect missions",
}

var missionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new mission",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		adapter := domain.New(cfg)

		name, _ := cmd.Flags().GetString("name")
		desc, _ := cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")
		sixW := workflow.SixW{}
		sixW.Who, _ = cmd.Flags().GetString("who")
		sixW.What, _ = cmd.Flags().GetString("what")
		sixW.When, _ = cmd.Flags().GetString("when")
		sixW.Where, _ = cmd.Flags().GetString("where")
		sixW.Why, _ = cmd.Flags().GetString("why")
		sixW.HowMuch, _ = cmd.Flags().GetString("how-much")

		if tmplName, _ := cmd.Flags().GetString("template"); tmplName != "" {
			tmpl, ok := adapter.Template(tmplName)
			if !ok {
				return fmt.Errorf("unknown template: %s", tmplName)
			}
			if name == "" {
				name = tmpl.Name
			}
			if desc == "" {
				desc = tmpl.Description
			}
			if category == "" {
				category = tmpl.Category
			}
			if sixW == (workflow.SixW{}) {
				sixW = tmpl.SixW
			}
		}
		if name == "" {
			return fmt.Errorf("mission name is required (--name or --template)")
		}

		m := workflow.NewMission(name, desc, category, sixW, adapter.SeedK(category))

		st, err := openStore()
		if err != nil {
			return err
		}
		if err := st.Create(m); err != nil {
			return fmt.Errorf("create mission: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created mission %s (%s)\n", m.ID, m.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  Category: %s (seed K=%.2f)\n", m.Category, m.Indices.K)
		return nil
	},
}

var missionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List missions",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}

		statusFilter, _ := cmd.Flags().GetString("status")
		missions, err := st.List(workflow.MissionStatus(statusFilter))
		if err != nil {
			return fmt.Errorf("list missions: %w", err)
		}

		if len(missions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No missions found.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-38s %-12s %-12s %-6s %-6s %-6s %s\n", "ID", "STATUS", "PHASE", "K", "I", "Ω", "NAME")
		fmt.Fprintf(w, "%-38s %-12s %-12s %-6s %-6s %-6s %s\n",
			strings.Repeat("-", 38),
			strings.Repeat("-", 12),
			strings.Repeat("-", 12),
			strings.Repeat("-", 6),
			strings.Repeat("-", 6),
			strings.Repeat("-", 6),
			strings.Repeat("-", 4))
		for _, m := range missions {
			fmt.Fprintf(w, "%-38s %-12s %-12s %-6.2f %-6.2f %-6.2f %s\n",
				m.ID, m.Status, m.CurrentPhase, m.Indices.K, m.Indices.I, m.Indices.Omega, m.Name)
		}
		return nil
	},
}

var missionShowCmd = &cobra.Command{
	Use:   "show <mission-id>",
	Short: "Show detailed mission state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}

		m, err := st.Get(args[0])
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Mission %s: %s\n", m.ID, m.Name)
		fmt.Fprintf(w, "  Status:      %s\n", m.Status)
		fmt.Fprintf(w, "  Phase:       %s\n", m.CurrentPhase)
		fmt.Fprintf(w, "  Category:    %s\n", m.Category)
		fmt.Fprintf(w, "  Indices:     K=%.2f I=%.2f Ω=%.2f (total %.2f)\n",
			m.Indices.K, m.Indices.I, m.Indices.Omega,
			indices.TotalScore(m.Indices.K, m.Indices.I, m.Indices.Omega))
		fmt.Fprintf(w, "  Created:     %s\n", m.CreatedAt)
		fmt.Fprintf(w, "  Updated:     %s\n", m.UpdatedAt)

		completed := m.PhaseResults.Completed()
		if len(completed) > 0 {
			fmt.Fprintln(w, "  Completed Phases:")
			for _, p := range completed {
				info, _ := workflow.Info(p)
				fmt.Fprintf(w, "    %s (%s)\n", p, info.KoreanName)
			}
		}
		return nil
	},
}

var missionRunCmd = &cobra.Command{
	Use:   "run <mission-id>...",
	Short: "Run the full workflow (discover → analyze → redesign)",
	Long: `Run the discover, analyze, and redesign stages for one or more missions,
short-circuiting a mission the moment a gate says ELIMINATE. Stage inputs
come from a YAML file with discover/analyze/redesign sections.

With multiple mission IDs the runs execute concurrently, capped by
--concurrency.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, _ := cmd.Flags().GetString("input")
		if inputPath == "" {
			return fmt.Errorf("--input is required")
		}

		var input engine.FullWorkflowInput
		if err := readYAMLFile(inputPath, &input); err != nil {
			return err
		}

		eng, st, cleanup, err := newEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		runs := make([]engine.BatchRun, 0, len(args))
		for _, id := range args {
			m, err := st.Get(id)
			if err != nil {
				return err
			}
			runs = append(runs, engine.BatchRun{Mission: m, Input: input})
		}

		var results []*engine.WorkflowResult
		if len(runs) == 1 {
			res, err := eng.RunFullWorkflow(runs[0].Mission, runs[0].Input)
			if err != nil {
				return err
			}
			results = []*engine.WorkflowResult{res}
		} else {
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			results, err = eng.RunBatch(context.Background(), runs, concurrency)
			if err != nil {
				return err
			}
		}

		w := cmd.OutOrStdout()
		for _, res := range results {
			fmt.Fprintf(w, "Mission %s: %s\n", res.MissionID, res.Outcome)
			if res.Discover != nil {
				fmt.Fprintf(w, "  discover: %s (K=%.2f I=%.2f)\n",
					res.Discover.Recommendation, res.Discover.Indices.K, res.Discover.Indices.I)
			}
			if res.Analyze != nil {
				fmt.Fprintf(w, "  analyze:  %s (total %.2f)\n", res.Analyze.Verdict, res.Analyze.TotalScore)
			}
			if res.Redesign != nil {
				fmt.Fprintf(w, "  redesign: %d tasks, %d MVP features\n",
					len(res.Redesign.Build.Tasks), len(res.Redesign.Launch.MVPFeatures))
			}
		}
		return nil
	},
}

var missionOptimizeCmd = &cobra.Command{
	Use:   "optimize <mission-id>",
	Short: "Run the optimize stage (MEASURE + LEARN) with measured outcomes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, _ := cmd.Flags().GetString("input")
		if inputPath == "" {
			return fmt.Errorf("--input is required")
		}

		var input engine.OptimizeInput
		if err := readYAMLFile(inputPath, &input); err != nil {
			return err
		}

		eng, st, cleanup, err := newEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		m, err := st.Get(args[0])
		if err != nil {
			return err
		}

		res, err := eng.Optimize(m, input)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Mission %s optimized\n", m.ID)
		fmt.Fprintf(w, "  OKR progress: %.0f%%\n", res.Measure.ProofPack.OKRProgressPct)
		fmt.Fprintf(w, "  TSEL delta:   %.2f\n", res.Measure.ProofPack.TSELDelta)
		fmt.Fprintf(w, "  Indices:      K=%.2f Ω=%.2f\n", res.Indices.K, res.Indices.Omega)
		return nil
	},
}

var missionEliminateCmd = &cobra.Command{
	Use:   "eliminate <mission-id>",
	Short: "Run the eliminate stage (SCALE) and resolve the mission's fate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, cleanup, err := newEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		m, err := st.Get(args[0])
		if err != nil {
			return err
		}

		res, err := eng.Eliminate(m)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Mission %s: %s\n", m.ID, res.Action)
		if res.ShouldRestartLoop {
			fmt.Fprintln(w, "  Maintaining: restart the loop with fresh discover input.")
		}
		for _, nm := range res.Scale.NextMissions {
			fmt.Fprintf(w, "  Next: %s\n", nm)
		}
		return nil
	},
}

var missionDeleteCmd = &cobra.Command{
	Use:   "delete <mission-id>",
	Short: "Delete a mission and its stage artifacts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		if err := st.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted mission %s\n", args[0])
		return nil
	},
}

func init() {
	missionCreateCmd.Flags().String("name", "", "Mission name")
	missionCreateCmd.Flags().String("description", "", "Mission description")
	missionCreateCmd.Flags().String("category", "", "Business category (drives the K seed)")
	missionCreateCmd.Flags().String("template", "", "Mission template name from the config")
	missionCreateCmd.Flags().String("who", "", "6W: who")
	missionCreateCmd.Flags().String("what", "", "6W: what")
	missionCreateCmd.Flags().String("when", "", "6W: when")
	missionCreateCmd.Flags().String("where", "", "6W: where")
	missionCreateCmd.Flags().String("why", "", "6W: why")
	missionCreateCmd.Flags().String("how-much", "", "6W: how much")

	missionListCmd.Flags().String("status", "", "Filter by mission status")
	missionShowCmd.Flags().Bool("json", false, "Print the raw mission JSON")

	missionRunCmd.Flags().String("input", "", "YAML file with discover/analyze/redesign stage inputs")
	missionRunCmd.Flags().Int("concurrency", 4, "Max concurrent missions for batch runs")

	missionOptimizeCmd.Flags().String("input", "", "YAML file with OKR and TSEL measurements")

	missionCmd.AddCommand(missionCreateCmd)
	missionCmd.AddCommand(missionListCmd)
	missionCmd.AddCommand(missionShowCmd)
	missionCmd.AddCommand(missionRunCmd)
	missionCmd.AddCommand(missionOptimizeCmd)
	missionCmd.AddCommand(missionEliminateCmd)
	missionCmd.AddCommand(missionDeleteCmd)
}
