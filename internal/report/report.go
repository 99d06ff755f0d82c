// Package report renders an analysis result into the export formats the
// review workflow consumes: the structured transaction table, the flagged
// duplicate report, and a full JSON dump.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"finwatch/upi-audit/internal/auditerror"
	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
)

// flaggedRow is the flat CSV shape of one counterparty group.
type flaggedRow struct {
	RawKey           string `csv:"Raw_Key"`
	Rail             string `csv:"Rail"`
	Confidence       string `csv:"Confidence"`
	DistinctCount    int    `csv:"Distinct_Count"`
	Labels           string `csv:"Other_Parties"`
	TransactionCount int    `csv:"Transaction_Count"`
	TransactionIDs   string `csv:"Transaction_IDs"`
}

// Generator writes analysis artifacts to disk.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator. A nil logger falls back to the default.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{logger: logger}
}

// WriteStructuredCSV writes the per-transaction extraction table.
func (g *Generator) WriteStructuredCSV(rows []models.StructuredRow, path string) error {
	file, err := g.createFile(path, "structured csv")
	if err != nil {
		return err
	}
	defer g.closeFile(file)

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return &auditerror.ReportError{FilePath: path, Format: "structured csv", Err: err}
	}

	g.logger.Info("structured table written",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}

// WriteGroupsCSV writes counterparty groups as a flat duplicate report.
// Pass result.Flagged for the flagged-only report or result.Groups for the
// full breakdown.
func (g *Generator) WriteGroupsCSV(groups []models.CounterpartyGroup, path string) error {
	rows := make([]flaggedRow, 0, len(groups))
	for _, grp := range groups {
		rows = append(rows, flaggedRow{
			RawKey:           grp.RawKey,
			Rail:             grp.Rail,
			Confidence:       grp.Confidence,
			DistinctCount:    grp.DistinctCount,
			Labels:           strings.Join(grp.Labels, ";"),
			TransactionCount: len(grp.TransactionIDs),
			TransactionIDs:   strings.Join(grp.TransactionIDs, ";"),
		})
	}

	file, err := g.createFile(path, "groups csv")
	if err != nil {
		return err
	}
	defer g.closeFile(file)

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return &auditerror.ReportError{FilePath: path, Format: "groups csv", Err: err}
	}

	g.logger.Info("duplicate report written",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}

// WriteJSON writes the complete analysis result for programmatic
// consumers.
func (g *Generator) WriteJSON(result models.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return &auditerror.ReportError{FilePath: path, Format: "json", Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return &auditerror.ReportError{FilePath: path, Format: "json", Err: err}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &auditerror.ReportError{FilePath: path, Format: "json", Err: err}
	}

	g.logger.Info("analysis result written",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldRunID, Value: result.RunID})
	return nil
}

func (g *Generator) createFile(path, format string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, &auditerror.ReportError{FilePath: path, Format: format, Err: err}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, &auditerror.ReportError{FilePath: path, Format: format, Err: err}
	}
	return file, nil
}

func (g *Generator) closeFile(file *os.File) {
	if err := file.Close(); err != nil {
		g.logger.WithError(err).Warn("failed to close report file")
	}
}
