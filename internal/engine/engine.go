// Package engine orchestrates one full analysis pass: records in,
// structured rows and flagged counterparty groups out.
package engine

import (
	"time"

	"github.com/google/uuid"

	"finwatch/upi-audit/internal/extractor"
	"finwatch/upi-audit/internal/grouper"
	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
)

// Pipeline wires the extractor and the grouping engine. A Pipeline is
// stateless between runs; every Run is a full recompute over its input.
type Pipeline struct {
	extractor *extractor.Extractor
	grouper   *grouper.Engine
	logger    logging.Logger
}

// New builds a Pipeline. Nil components fall back to defaults.
func New(ex *extractor.Extractor, gr *grouper.Engine, logger logging.Logger) *Pipeline {
	if ex == nil {
		ex = extractor.New(nil, extractor.Options{}, logger)
	}
	if gr == nil {
		gr = grouper.New(0, logger)
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Pipeline{extractor: ex, grouper: gr, logger: logger}
}

// Run processes the records in order and returns the complete analysis
// result. The other-party label for grouping is the externally supplied
// counterparty when the ingestion provided one, otherwise the payer name
// derived from the narration.
func (p *Pipeline) Run(records []models.TransactionRecord) models.AnalysisResult {
	rows := make([]models.StructuredRow, 0, len(records))
	entries := make([]grouper.Entry, 0, len(records))

	for _, rec := range records {
		ex := p.extractor.Extract(rec.Description)

		label := rec.Counterparty
		if label == "" {
			label = ex.PayerName
		}

		rows = append(rows, models.StructuredRow{
			TransactionID:  rec.ID,
			Rail:           string(ex.Identifier.Rail),
			Handle:         ex.Handle,
			HandleUser:     ex.HandleUser,
			PayerName:      ex.PayerName,
			PayerHandle:    ex.PayerHandle,
			RawKey:         ex.Identifier.RawKey,
			Confidence:     string(ex.Identifier.Confidence),
			OtherParty:     label,
			RawDescription: rec.Description,
		})
		entries = append(entries, grouper.Entry{
			TransactionID: rec.ID,
			RawKey:        ex.Identifier.RawKey,
			Label:         label,
			Rail:          ex.Identifier.Rail,
			Confidence:    ex.Identifier.Confidence,
		})
	}

	groups, unidentified := p.grouper.Fold(entries)
	flagged := grouper.Flagged(groups)

	result := models.AnalysisResult{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Rows:         rows,
		Groups:       groups,
		Flagged:      flagged,
		Unidentified: unidentified,
	}

	p.logger.Info("analysis run complete",
		logging.Field{Key: logging.FieldRunID, Value: result.RunID},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: "flagged", Value: len(flagged)},
		logging.Field{Key: "unidentified", Value: len(unidentified)})
	return result
}
