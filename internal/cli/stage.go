package cli

import (
	"encoding/json"
	"fmt"

	"github.com/Ohseho81/autus-engine/internal/engine"
	"github.com/spf13/cobra"
)

// stageInputFile is the YAML shape accepted by `autus stage run`. Only the
// section for the requested stage is read; eliminate takes no input.
type stageInputFile struct {
	Discover engine.DiscoverInput `yaml:"discover"`
	Analyze  engine.AnalyzeInput  `yaml:"analyze"`
	Redesign engine.RedesignInput `yaml:"redesign"`
	Optimize engine.OptimizeInput `yaml:"optimize"`
}

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Run and inspect individual engine stages",
}

var stageRunCmd = &cobra.Command{
	Use:   "run <mission-id> <stage>",
	Short: "Run a single stage (discover, analyze, redesign, optimize, eliminate)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, stage := args[0], args[1]

		var input stageInputFile
		if stage != engine.StageEliminate {
			inputPath, _ := cmd.Flags().GetString("input")
			if inputPath == "" {
				return fmt.Errorf("--input is required for stage %s", stage)
			}
			if err := readYAMLFile(inputPath, &input); err != nil {
				return err
			}
		}

		eng, st, cleanup, err := newEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		m, err := st.Get(id)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch stage {
		case engine.StageDiscover:
			res, err := eng.Discover(m, input.Discover)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "discover: %s (K=%.2f I=%.2f)\n",
				res.Recommendation, res.Indices.K, res.Indices.I)
		case engine.StageAnalyze:
			res, err := eng.Analyze(m, input.Analyze)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "analyze: %s (total %.2f, Ω=%.2f)\n",
				res.Verdict, res.TotalScore, res.Indices.Omega)
		case engine.StageRedesign:
			res, err := eng.Redesign(m, input.Redesign)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "redesign: %s (automation %.0f, %d tasks)\n",
				res.Action, res.AutomationScore, len(res.Build.Tasks))
		case engine.StageOptimize:
			res, err := eng.Optimize(m, input.Optimize)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "optimize: K=%.2f Ω=%.2f (OKR %.0f%%)\n",
				res.Indices.K, res.Indices.Omega, res.Measure.ProofPack.OKRProgressPct)
		case engine.StageEliminate:
			res, err := eng.Eliminate(m)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "eliminate: %s\n", res.Action)
		default:
			return fmt.Errorf("unknown stage: %s", stage)
		}
		return nil
	},
}

var stageResultCmd = &cobra.Command{
	Use:   "result <mission-id> <stage>",
	Short: "Print the stored result of a completed stage",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}

		var result json.RawMessage
		if err := st.GetStageResult(args[0], args[1], &result); err != nil {
			return err
		}

		var pretty interface{}
		if err := json.Unmarshal(result, &pretty); err != nil {
			return err
		}
		data, err := json.MarshalIndent(pretty, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var stageHistoryCmd = &cobra.Command{
	Use:   "history <mission-id>",
	Short: "Show recorded stage runs for a mission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		runs, err := database.StageRunsForMission(args[0])
		if err != nil {
			return fmt.Errorf("stage runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No stage runs recorded.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-12s %-14s %-6s %-6s %-6s %-10s %s\n", "STAGE", "VERDICT", "K", "I", "Ω", "DURATION", "AT")
		for _, r := range runs {
			fmt.Fprintf(w, "%-12s %-14s %-6.2f %-6.2f %-6.2f %-10s %s\n",
				r.Stage, r.Verdict, r.K, r.I, r.Omega,
				fmt.Sprintf("%dms", r.DurationMs), r.Timestamp)
		}
		return nil
	},
}

func init() {
	stageRunCmd.Flags().String("input", "", "YAML file with stage inputs")

	stageCmd.AddCommand(stageRunCmd)
	stageCmd.AddCommand(stageResultCmd)
	stageCmd.AddCommand(stageHistoryCmd)
}
