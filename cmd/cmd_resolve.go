// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mrovere/gsepod/gse"
	"github.com/mrovere/gsepod/history"
)

var (
	resolveJSON bool
	resolveFile string
	resolveDB   string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <POD>…",
	Short: "Risolve uno o più POD",
	Long: `Risolve uno o più codici POD in cabina primaria, fornitore, regioni,
province e comuni. I POD possono essere passati come argomenti oppure letti
da file con --file, uno per riga.

$ gsepod resolve IT001E32728586
$ gsepod resolve --file pods.txt --db storico.duckdb
`,
	RunE: func(_ *cobra.Command, args []string) error {
		pods, err := collectPods(args)
		if err != nil {
			return err
		}

		if len(pods) == 0 {
			return fmt.Errorf("nessun POD da risolvere: passare argomenti o --file")
		}

		resolver := newResolver()
		defer resolver.Close()

		var repo history.Repository
		if resolveDB != "" {
			var closeDB func() error

			repo, closeDB, err = openHistory(resolveDB)
			if err != nil {
				return err
			}
			defer closeDB()
		}

		if len(pods) == 1 {
			result, err := resolver.Resolve(context.Background(), pods[0])
			if err != nil {
				return err
			}

			record(repo, result)

			return printResult(result)
		}

		return resolveBatch(resolver, repo, pods)
	},
}

// collectPods merges command-line arguments with the optional --file input.
// Blank lines and #-comments are skipped.
func collectPods(args []string) ([]string, error) {
	pods := append([]string{}, args...)

	if resolveFile == "" {
		return pods, nil
	}

	f, err := os.Open(resolveFile)
	if err != nil {
		return nil, fmt.Errorf("opening POD list: %w", err)
	}

	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pods = append(pods, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading POD list: %w", err)
	}

	return pods, nil
}

func resolveBatch(resolver *gse.Resolver, repo history.Repository, pods []string) error {
	var bar *progressbar.ProgressBar
	if !resolveJSON && isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(pods),
			progressbar.OptionSetDescription("Resolving"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var failed int

	for _, pod := range pods {
		result, err := resolver.Resolve(context.Background(), pod)
		if err != nil {
			failed++

			log.Printf("Resolution failed for %s - %s", pod, err)
		} else {
			record(repo, result)

			if err := printResult(result); err != nil {
				return err
			}
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				return fmt.Errorf("updating progress bar: %w", err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d resolutions failed", failed, len(pods))
	}

	return nil
}

// record stores a successful resolution, best effort.
func record(repo history.Repository, result *gse.PODResult) {
	if repo == nil {
		return
	}

	if err := repo.SaveResolution(history.FromResult(result)); err != nil {
		log.Printf("recording resolution for %s: %v", result.POD, err)
	}
}

func printResult(result *gse.PODResult) error {
	if resolveJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}

		fmt.Println(string(encoded))

		return nil
	}

	fmt.Printf("POD:             %s\n", result.POD)
	fmt.Printf("Cabina primaria: %s\n", result.CabinaPrimaria)

	fornitore := result.Fornitore
	if fornitore == "" {
		fornitore = "(non specificato)"
	}

	fmt.Printf("Fornitore:       %s\n", fornitore)
	fmt.Printf("Regioni:         %s\n", strings.Join(result.Regioni, ", "))
	fmt.Printf("Province:        %s\n", strings.Join(result.Province, ", "))
	fmt.Printf("Comuni (%d):     %s\n", len(result.Comuni), strings.Join(result.Comuni, ", "))

	return nil
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "stampa il risultato in JSON")
	resolveCmd.Flags().StringVar(&resolveFile, "file", "", "file con un POD per riga")
	resolveCmd.Flags().StringVar(&resolveDB, "db", "", "registra le risoluzioni nel database indicato")

	rootCmd.AddCommand(resolveCmd)
}
