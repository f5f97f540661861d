// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrovere/gsepod/istat"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Traduzione diretta dei codici ISTAT",
}

func codeArg(args []string) (int, error) {
	code, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("codice non numerico: %q", args[0])
	}

	return code, nil
}

var lookupRegioneCmd = &cobra.Command{
	Use:   "regione <codice>",
	Short: "Traduce un codice regione ISTAT",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		code, err := codeArg(args)
		if err != nil {
			return err
		}

		if !istat.KnownRegion(code) {
			return fmt.Errorf("codice regione sconosciuto: %d", code)
		}

		fmt.Println(istat.RegionName(code))

		return nil
	},
}

var lookupProvinciaCmd = &cobra.Command{
	Use:   "provincia <codice>",
	Short: "Traduce un codice provincia ISTAT",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		code, err := codeArg(args)
		if err != nil {
			return err
		}

		if !istat.KnownProvince(code) {
			return fmt.Errorf("codice provincia sconosciuto: %d", code)
		}

		fmt.Println(istat.ProvinceName(code))

		return nil
	},
}

func init() {
	lookupCmd.AddCommand(lookupRegioneCmd)
	lookupCmd.AddCommand(lookupProvinciaCmd)
	rootCmd.AddCommand(lookupCmd)
}
