package logging

// Standardized field names for structured logging.
const (
	FieldFile      = "file_path"
	FieldArtifact  = "artifact"
	FieldAccount   = "account"
	FieldCategory  = "category"
	FieldMonth     = "month"
	FieldYear      = "year"
	FieldCount     = "count"
	FieldAccounts  = "accounts"
	FieldMonths    = "months"
	FieldAsOf      = "as_of"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldExcluded  = "excluded"
	FieldComponent = "component"
)
