package cli

import (
	"github.com/Ohseho81/autus-engine/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web API",
	Long: `Start a read-only HTTP API on localhost exposing mission state, events,
and analytics. The server reads the same ~/.autus/ store and database the
CLI writes to, so it can run alongside normal engine use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")

		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		st, err := openStore()
		if err != nil {
			return err
		}

		return web.NewServer(st, database, port).Start()
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
}
