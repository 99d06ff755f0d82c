// Package models defines the shared data types passed between the
// ingestion boundary, the extraction pipeline and the reporting layer.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a statement row credits or debits the
// account under analysis.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
	DirectionOther  Direction = "other"
)

// ParseDirection maps the free-form credit/debit markers found in statement
// exports (CR, CREDIT, DR, DBIT, ...) onto a Direction. Anything
// unrecognized becomes DirectionOther.
func ParseDirection(s string) Direction {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CR", "C", "CRDT", "CREDIT":
		return DirectionCredit
	case "DR", "D", "DBIT", "DEBIT":
		return DirectionDebit
	default:
		return DirectionOther
	}
}

// TransactionRecord is one statement row as handed over by the ingestion
// boundary. It is immutable once read; the pipeline never retains it beyond
// the current run.
type TransactionRecord struct {
	ID           string
	Description  string
	Direction    Direction
	Amount       decimal.Decimal
	// Counterparty is an optional externally supplied other-party label.
	// When present it takes precedence over the payer name derived from
	// the description.
	Counterparty string
}

// StructuredRow is the per-transaction extraction breakdown, mirroring the
// structured table the review workflow exports.
type StructuredRow struct {
	TransactionID  string `csv:"Transaction_ID" json:"transaction_id"`
	Rail           string `csv:"Rail" json:"rail"`
	Handle         string `csv:"Handle" json:"handle,omitempty"`
	HandleUser     string `csv:"Handle_User" json:"handle_user,omitempty"`
	PayerName      string `csv:"Payer_Name" json:"payer_name,omitempty"`
	PayerHandle    string `csv:"Payer_Handle" json:"payer_handle,omitempty"`
	RawKey         string `csv:"Raw_Key" json:"raw_key,omitempty"`
	Confidence     string `csv:"Confidence" json:"confidence,omitempty"`
	OtherParty     string `csv:"Other_Party" json:"other_party,omitempty"`
	RawDescription string `csv:"Raw_Description" json:"raw_description"`
}
