package logging

// Standardized field names for structured logging. Using the same keys
// everywhere keeps the log output filterable.
const (
	FieldFile          = "file_path"
	FieldTransactionID = "transaction_id"
	FieldRail          = "rail"
	FieldRawKey        = "raw_key"
	FieldConfidence    = "confidence"
	FieldStrategy      = "strategy"
	FieldCount         = "count"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
	FieldRunID         = "run_id"
)
