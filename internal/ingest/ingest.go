// Package ingest reads tabular statement exports into TransactionRecords.
// It is the boundary collaborator in front of the extraction core: column
// problems are reported here, before the pipeline runs, and never inside
// the core.
package ingest

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"finwatch/upi-audit/internal/auditerror"
	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
)

// Column names expected in the statement header. TransactionID and
// Description are required; the rest are optional.
const (
	ColumnTransactionID = "Transaction ID"
	ColumnDescription   = "Description"
	ColumnCreditDebit   = "Credit/Debit"
	ColumnAmount        = "Amount"
	ColumnCounterparty  = "Counterparty"
)

// statementRow maps one CSV row. Amount stays a string here; parsing is
// tolerant and happens during conversion.
type statementRow struct {
	TransactionID string `csv:"Transaction ID"`
	Description   string `csv:"Description"`
	CreditDebit   string `csv:"Credit/Debit"`
	Amount        string `csv:"Amount"`
	Counterparty  string `csv:"Counterparty"`
}

// Reader ingests statement CSV files.
type Reader struct {
	logger logging.Logger
}

// NewReader creates a Reader. A nil logger falls back to the default.
func NewReader(logger logging.Logger) *Reader {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Reader{logger: logger}
}

// ReadFile reads a statement CSV into TransactionRecords, preserving row
// order. Missing required columns yield a MissingColumnError before any
// row is converted.
func (r *Reader) ReadFile(filePath string) ([]models.TransactionRecord, error) {
	r.logger.Info("reading statement file",
		logging.Field{Key: logging.FieldFile, Value: filePath})

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &auditerror.IngestError{FilePath: filePath, Err: err}
	}

	if err := validateHeader(filePath, data); err != nil {
		return nil, err
	}

	var rows []statementRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, &auditerror.IngestError{FilePath: filePath, Err: err}
	}

	records := make([]models.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.TransactionRecord{
			ID:           strings.TrimSpace(row.TransactionID),
			Description:  row.Description,
			Direction:    models.ParseDirection(row.CreditDebit),
			Amount:       parseAmount(row.Amount),
			Counterparty: strings.TrimSpace(row.Counterparty),
		})
	}

	r.logger.Info("statement file read",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return records, nil
}

// validateHeader checks the required columns are present, mirroring the
// "file must contain ..." check of the review workflow.
func validateHeader(filePath string, data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return &auditerror.IngestError{FilePath: filePath, Err: err}
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = true
	}

	for _, required := range []string{ColumnTransactionID, ColumnDescription} {
		if !present[required] {
			return &auditerror.MissingColumnError{FilePath: filePath, Column: required}
		}
	}
	return nil
}

// parseAmount converts the optional amount cell. Statement exports write
// amounts with thousands separators; anything unparseable degrades to zero
// rather than failing the row.
func parseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
