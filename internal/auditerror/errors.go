// Package auditerror defines the typed errors raised at the ingestion and
// reporting boundaries. The extraction core itself never fails on bad
// narration text; a missing identifier is data, not an error.
package auditerror

import "fmt"

// IngestError reports a statement file that could not be read or parsed.
type IngestError struct {
	FilePath string
	Err      error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("failed to ingest statement file '%s': %v", e.FilePath, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// MissingColumnError reports a statement file that lacks a required column.
type MissingColumnError struct {
	FilePath string
	Column   string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("statement file '%s' is missing required column '%s'", e.FilePath, e.Column)
}

// ReportError reports a failure while writing an output artifact.
type ReportError struct {
	FilePath string
	Format   string
	Err      error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("failed to write %s report to '%s': %v", e.Format, e.FilePath, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}
