package models

import "time"

// CounterpartyGroup aggregates all transactions that mapped to one raw key.
// Labels is the distinct set of other-party labels observed for the key;
// its cardinality decides whether the key is flagged. TransactionIDs is the
// full evidence list in input order, duplicates kept.
type CounterpartyGroup struct {
	RawKey         string   `csv:"Raw_Key" json:"raw_key"`
	Rail           string   `csv:"Rail" json:"rail"`
	Confidence     string   `csv:"Confidence" json:"confidence"`
	Labels         []string `csv:"-" json:"labels"`
	DistinctCount  int      `csv:"Distinct_Count" json:"distinct_count"`
	TransactionIDs []string `csv:"-" json:"transaction_ids"`
	Flagged        bool     `csv:"Flagged" json:"flagged"`
}

// AnalysisResult is the complete output of one pipeline run. Groups are
// rebuilt from scratch every run; there is no incremental update.
type AnalysisResult struct {
	RunID        string              `json:"run_id"`
	GeneratedAt  time.Time           `json:"generated_at"`
	Rows         []StructuredRow     `json:"rows"`
	Groups       []CounterpartyGroup `json:"groups"`
	Flagged      []CounterpartyGroup `json:"flagged"`
	Unidentified []string            `json:"unidentified"`
}
