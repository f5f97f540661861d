// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/spf13/cobra"

	"github.com/mrovere/gsepod/history"
)

var (
	historyDB    string
	historyLimit int
)

// openHistory opens (or creates) the history database and ensures the
// schema exists.
func openHistory(path string) (history.Repository, func() error, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	repo := history.NewRepository(db)
	if err := repo.CreateSchema(); err != nil {
		db.Close()

		return nil, nil, fmt.Errorf("creating schema: %w", err)
	}

	return repo, db.Close, nil
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Consulta lo storico delle risoluzioni",
}

func printRecords(records []*history.Record) {
	for _, r := range records {
		fmt.Printf("%s  %-12s  %-30s  %s\n",
			r.UpdatedAt.Format("2006-01-02 15:04"),
			r.CabinaPrimaria,
			r.POD,
			strings.Join(r.Comuni, ", "))
	}
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Elenca le risoluzioni più recenti",
	RunE: func(_ *cobra.Command, _ []string) error {
		repo, closeDB, err := openHistory(historyDB)
		if err != nil {
			return err
		}
		defer closeDB()

		records, err := repo.ListRecent(historyLimit)
		if err != nil {
			return fmt.Errorf("listing resolutions: %w", err)
		}

		count, err := repo.Count()
		if err != nil {
			return fmt.Errorf("counting resolutions: %w", err)
		}

		printRecords(records)
		fmt.Printf("%d risoluzioni in archivio\n", count)

		return nil
	},
}

var historySearchCmd = &cobra.Command{
	Use:   "search <comune>",
	Short: "Cerca risoluzioni per comune",
	Long: `Cerca nello storico le risoluzioni che coprono un comune. La ricerca
ignora maiuscole e accenti: "forli" trova "Forlì".`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		repo, closeDB, err := openHistory(historyDB)
		if err != nil {
			return err
		}
		defer closeDB()

		records, err := repo.SearchByComune(args[0], historyLimit)
		if err != nil {
			return fmt.Errorf("searching resolutions: %w", err)
		}

		if len(records) == 0 {
			fmt.Printf("nessuna risoluzione per %q\n", args[0])

			return nil
		}

		printRecords(records)

		return nil
	},
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDB, "db", "gsepod.duckdb", "database dello storico")
	historyCmd.PersistentFlags().IntVar(&historyLimit, "limit", 50, "numero massimo di risultati")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)
	rootCmd.AddCommand(historyCmd)
}
