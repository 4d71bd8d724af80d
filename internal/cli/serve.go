package cli

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/gitscape/gitscape/internal/git"
	"github.com/gitscape/gitscape/internal/scenario"
	"github.com/gitscape/gitscape/internal/server"
	"github.com/gitscape/gitscape/internal/snapshot"
	"github.com/gitscape/gitscape/internal/state"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GitScape backend server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.ListenAddr = serveAddr
		}

		engine := git.NewEngine()
		engine.Author = cfg.Author()
		engine.Branch = cfg.DefaultBranch

		sessions := state.NewSessionManager(engine, cfg.HistoryLimit)
		runner := scenario.NewRunner(scenario.NewLoader(cfg.ScenarioDir), sessions)

		if err := os.MkdirAll(cfg.SnapshotsDir(), 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		store := snapshot.NewStore(osfs.New(cfg.SnapshotsDir()))

		srv := server.NewServer(sessions, runner, store)

		log.Printf("Scenarios from %s, snapshots in %s", cfg.ScenarioDir, cfg.SnapshotsDir())
		log.Printf("Server listening on %s", cfg.ListenAddr)
		return http.ListenAndServe(cfg.ListenAddr, srv)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}
