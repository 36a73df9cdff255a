package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "autus",
	Short: "autus — a staged decision engine for mission evaluation",
	Long: `autus drives missions through a nine-phase workflow (SENSE through SCALE)
and a five-stage engine loop that scores them on the value (K), interaction
(I), and efficiency (Ω) indices, gating each stage on
proceed/redesign/eliminate verdicts.

All state is stored in ~/.autus/ (SQLite for events and stage runs, JSON
for mission artifacts). Configuration is read from autus.yaml when present.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(missionCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(serveCmd)
}
