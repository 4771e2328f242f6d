package main

import (
	"github.com/spf13/cobra"

	"github.com/javijec/new-biblia/internal/logging"
	"github.com/javijec/new-biblia/internal/storage"
	"github.com/javijec/new-biblia/searcher/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the corpus and search over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		engine, store, err := newEngine(cfg)
		if err != nil {
			return err
		}
		if _, err := engine.Index(); err != nil {
			return err
		}

		var index *storage.IndexDB
		if db, err := openIndex(cfg.Search.IndexDB); err != nil {
			logging.Warn("ranked search disabled", "error", err)
		} else {
			index = db
			defer db.Close()
		}

		return api.NewServer(engine, store, index).ListenAndServe(cmd.Context(), cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to the configured value)")
	rootCmd.AddCommand(serveCmd)
}
