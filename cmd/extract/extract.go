// Package extract implements the structured-table command: per-transaction
// extraction breakdown without the grouping pass.
package extract

import (
	"github.com/spf13/cobra"

	"finwatch/upi-audit/cmd/common"
	"finwatch/upi-audit/cmd/root"
	"finwatch/upi-audit/internal/report"
)

var (
	inputFile  string
	outputFile string
)

// Cmd is the extract command.
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Export the structured transaction table for a statement CSV",
	Long: `Extract parses every narration and writes the structured table
(rail, handle, payer name, raw key, confidence) so reviewers can inspect
extraction quality before running the duplicate analysis.`,
	Run: extractFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input statement CSV file (required)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output structured table CSV (required)")
	if err := Cmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
	if err := Cmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
}

func extractFunc(cmd *cobra.Command, args []string) {
	log := root.Log

	result, err := common.RunAnalysis(root.Cfg, inputFile, log)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	if err := report.NewGenerator(log).WriteStructuredCSV(result.Rows, outputFile); err != nil {
		log.Fatalf("Error writing structured table: %v", err)
	}
	log.Info("Structured table export complete")
}
