package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldStatus     = "status"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldRow        = "row"
	FieldColumn     = "column"
	FieldValue      = "value"
	FieldSegment    = "segment"
	FieldProject    = "project"
	FieldPeriod     = "period"
	FieldOutputFile = "output_file"
	FieldSessionID  = "session_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldRemoteAddr = "remote_addr"
	FieldRequestID  = "request_id"
)
