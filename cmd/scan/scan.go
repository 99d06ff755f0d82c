// Package scan implements the end-to-end analysis command: ingest a
// statement CSV, extract identifiers, group, flag and export.
package scan

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"finwatch/upi-audit/cmd/common"
	"finwatch/upi-audit/cmd/root"
	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
	"finwatch/upi-audit/internal/report"
	"finwatch/upi-audit/internal/reviewer"
)

var (
	inputFile       string
	jsonFile        string
	flaggedFile     string
	tableFile       string
	suggestionsFile string
	withReview      bool
)

// Cmd is the scan command.
var Cmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the full duplicate-payment analysis on a statement CSV",
	Long: `Scan ingests a statement CSV, extracts a canonical identifier per
transaction, groups transactions by identifier and flags identifiers seen
with more than one distinct other party.`,
	Run: scanFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input statement CSV file (required)")
	Cmd.Flags().StringVarP(&jsonFile, "json", "j", "", "Write the full analysis result as JSON")
	Cmd.Flags().StringVarP(&flaggedFile, "flagged", "f", "", "Write the flagged-group report as CSV")
	Cmd.Flags().StringVarP(&tableFile, "table", "t", "", "Write the structured transaction table as CSV")
	Cmd.Flags().StringVarP(&suggestionsFile, "suggestions", "s", "", "Write review-assist suggestions as JSON")
	Cmd.Flags().BoolVarP(&withReview, "review", "r", false, "Run review assist over REVIEW-confidence groups")
	if err := Cmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
}

func scanFunc(cmd *cobra.Command, args []string) {
	log := root.Log

	result, err := common.RunAnalysis(root.Cfg, inputFile, log)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	log.Info("Scan complete",
		logging.Field{Key: logging.FieldCount, Value: len(result.Rows)},
		logging.Field{Key: "flagged", Value: len(result.Flagged)},
		logging.Field{Key: "unidentified", Value: len(result.Unidentified)})

	gen := report.NewGenerator(log)
	if tableFile != "" {
		if err := gen.WriteStructuredCSV(result.Rows, tableFile); err != nil {
			log.Fatalf("Error writing structured table: %v", err)
		}
	}
	if flaggedFile != "" {
		if err := gen.WriteGroupsCSV(result.Flagged, flaggedFile); err != nil {
			log.Fatalf("Error writing flagged report: %v", err)
		}
	}
	if jsonFile != "" {
		if err := gen.WriteJSON(result, jsonFile); err != nil {
			log.Fatalf("Error writing JSON result: %v", err)
		}
	}

	if withReview || suggestionsFile != "" {
		runReviewAssist(log, result)
	}
}

// runReviewAssist evaluates REVIEW-confidence groups with the heuristic
// strategy and, when enabled, Gemini. Failures never abort the scan.
func runReviewAssist(log logging.Logger, result models.AnalysisResult) {
	ctx := context.Background()

	strategies := []reviewer.Strategy{reviewer.NewHeuristicStrategy(log)}
	if root.Cfg.AI.Enabled {
		gemini, err := reviewer.NewGeminiStrategy(ctx, root.Cfg.AI.APIKey, root.Cfg.AI.Model,
			time.Duration(root.Cfg.AI.TimeoutSeconds)*time.Second, log)
		if err != nil {
			log.WithError(err).Warn("Gemini review assist unavailable")
		} else {
			defer func() {
				if err := gemini.Close(); err != nil {
					log.WithError(err).Warn("Failed to close Gemini client")
				}
			}()
			// AI first, heuristic as fallback.
			strategies = append([]reviewer.Strategy{gemini}, strategies...)
		}
	}

	suggestions := reviewer.New(log, strategies...).Evaluate(ctx, result.Groups)
	for _, s := range suggestions {
		log.Info("Review suggestion",
			logging.Field{Key: logging.FieldRawKey, Value: s.RawKey},
			logging.Field{Key: logging.FieldStrategy, Value: s.Strategy},
			logging.Field{Key: "same_party", Value: s.SameParty})
	}

	if suggestionsFile != "" {
		data, err := json.MarshalIndent(suggestions, "", "  ")
		if err != nil {
			log.Fatalf("Error encoding suggestions: %v", err)
		}
		if err := os.WriteFile(suggestionsFile, data, 0o600); err != nil {
			log.Fatalf("Error writing suggestions: %v", err)
		}
	}
}
