package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citegraph/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the edge list for mutual citations",
	Long: `Verify loads a collected edge list and reports every pair of publications
that cite each other. Each bidirectional pair is printed once.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("in", "citations_edgelist.csv", "edge list CSV input path")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	in, _ := cmd.Flags().GetString("in")

	_, err := verify.CheckFile(in, os.Stdout)
	return err
}
