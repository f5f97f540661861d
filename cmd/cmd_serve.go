// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mrovere/gsepod/history"
	"github.com/mrovere/gsepod/server"
)

var (
	serveAddr string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Espone il risolutore via HTTP",
	Long: `Avvia un server HTTP con API JSON per la risoluzione dei POD, le
tabelle ISTAT e, se --db è indicato, lo storico delle risoluzioni.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		resolver := newResolver()
		defer resolver.Close()

		var repo history.Repository
		if serveDB != "" {
			var closeDB func() error
			var err error

			repo, closeDB, err = openHistory(serveDB)
			if err != nil {
				return err
			}
			defer closeDB()
		}

		log.Printf("serving on %s", serveAddr)

		return server.NewServer(resolver, repo).Run(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "indirizzo di ascolto")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "registra le risoluzioni nel database indicato")

	rootCmd.AddCommand(serveCmd)
}
