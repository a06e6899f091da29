package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldFormat      = "format"
	FieldEncoding    = "encoding"
	FieldCount       = "count"
	FieldRow         = "row"
	FieldStatus      = "status"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldTag         = "tag"
	FieldKind        = "kind"
	FieldReason      = "reason"
	FieldStrategy    = "strategy"
	FieldMapping     = "mapping"
	FieldSection     = "section"
	FieldError       = "error"
)
