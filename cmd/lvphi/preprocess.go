// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvphi/preprocess"
)

func newSNVCmd(rf *readFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "snv FILE",
		Short: "Apply Standard Normal Variate to every row and print CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := rf.read(args[0])
			if err != nil {
				return err
			}
			out, err := preprocess.SNV(t.Data)
			if err != nil {
				return err
			}
			return writeCSV(cmd.OutOrStdout(), t.Headers, t.RowLabels, out)
		},
	}
}

func newSavGolCmd(rf *readFlags) *cobra.Command {
	var window, deriv, order int

	cmd := &cobra.Command{
		Use:   "savgol FILE",
		Short: "Apply a Savitzky-Golay filter to every row and print CSV",
		Long: `Smooth or differentiate every row with a Savitzky-Golay filter of half-width
--window and polynomial order --order. The output has 2*window fewer columns;
column headers are trimmed to match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := rf.read(args[0])
			if err != nil {
				return err
			}
			out, _, err := preprocess.SavitzkyGolay(window, deriv, order, t.Data)
			if err != nil {
				return err
			}
			headers := t.Headers
			if len(headers) > 2*window {
				headers = headers[window : len(headers)-window]
			}
			return writeCSV(cmd.OutOrStdout(), headers, t.RowLabels, out)
		},
	}
	cmd.Flags().IntVarP(&window, "window", "w", 5, "Half-width of the filter window")
	cmd.Flags().IntVarP(&deriv, "deriv", "d", 0, "Derivative order (0 smooths)")
	cmd.Flags().IntVarP(&order, "order", "o", 2, "Polynomial order")

	return cmd
}
