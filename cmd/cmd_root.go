// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrovere/gsepod/gse"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "gsepod",
	Short: "risoluzione di POD tramite i servizi cartografici GSE",
	Long: `
gsepod risolve un codice POD (Point of Delivery) nella sua cabina primaria,
nel fornitore del servizio e nei comuni, province e regioni coperti
dall'area convenzionale, interrogando i FeatureServer pubblici del GSE.
`,
}

var resolverOptions = &gse.Options{}

func init() {
	rootCmd.PersistentFlags().DurationVar(&resolverOptions.Timeout, "timeout",
		gse.DefaultTimeout, "timeout per singola richiesta HTTP")
	rootCmd.PersistentFlags().StringVar(&resolverOptions.BaseURL, "base-url",
		"", "URL base dei servizi GSE (default: servizio pubblico)")
	rootCmd.PersistentFlags().BoolVar(&resolverOptions.EnableHTTPTrace, "trace",
		false, "traccia le richieste HTTP su stderr")
	rootCmd.PersistentFlags().BoolVar(&resolverOptions.EnableHTTPBodyTrace, "trace-body",
		false, "traccia anche i corpi delle richieste HTTP")
}

// newResolver builds a resolver from the global flags.
func newResolver() *gse.Resolver {
	resolverOptions.UserAgent = fmt.Sprintf("gsepod/%s (+https://github.com/mrovere/gsepod)", Version)

	return gse.NewResolver(resolverOptions)
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
