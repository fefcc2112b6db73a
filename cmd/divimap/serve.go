package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sant0-9/divimap/internal/web"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the map view and instruction endpoint over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("listen") {
			cfg.Listen = serveListen
		}

		log := buildLogger("web", os.Stderr)
		features, err := loadFeatures(cfg, &log)
		if err != nil {
			return err
		}
		sess, err := newSession(cfg, features, &log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return web.New(sess, &log).Run(ctx, cfg.Listen)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "localhost:8080", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}
