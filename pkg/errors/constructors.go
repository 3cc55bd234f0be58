package errors

import "fmt"

// -----------------------------------------------------------------------------
// Constructors with Auto-Attached Suggestions
// -----------------------------------------------------------------------------

// Config creates a configuration error with registry suggestions attached.
func Config(code, message string) *ReportError {
	return AttachSuggestions(New(code, CategoryConfig, message))
}

// Configf creates a configuration error with a formatted message.
func Configf(code, format string, args ...interface{}) *ReportError {
	return Config(code, fmt.Sprintf(format, args...))
}

// ConfigWrap wraps an error as a configuration error.
func ConfigWrap(cause error, code, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, code, CategoryConfig, message))
}

// Input creates an input error with registry suggestions attached.
func Input(code, message string) *ReportError {
	return AttachSuggestions(New(code, CategoryInput, message))
}

// InputWrap wraps an error as an input error.
func InputWrap(cause error, code, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, code, CategoryInput, message))
}

// RenderWrap wraps a drawing surface failure.
func RenderWrap(cause error, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, ErrRenderFailed, CategoryRender, message))
}

// IOWrap wraps an error as an IO error.
func IOWrap(cause error, code, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, code, CategoryIO, message))
}

// -----------------------------------------------------------------------------
// Quick Constructors
// -----------------------------------------------------------------------------

// ConfigNotFound creates a CONFIG_NOT_FOUND error.
func ConfigNotFound(path string) *ReportError {
	return Config(ErrConfigNotFound, "configuration file not found").
		WithContext("path", path)
}

// ConfigParseError creates a CONFIG_PARSE_FAILED error.
func ConfigParseError(path string, cause error) *ReportError {
	return ConfigWrap(cause, ErrConfigParseFailed, "failed to parse configuration file").
		WithContext("path", path)
}

// ConfigInvalid creates a CONFIG_INVALID error naming the offending field.
func ConfigInvalid(field, reason string) *ReportError {
	return Configf(ErrConfigInvalid, "invalid configuration: %s", reason).
		WithContext("field", field)
}

// InputMissing creates an INPUT_MISSING error for a nil or empty report input.
func InputMissing(report, field string) *ReportError {
	return Input(ErrInputMissing, fmt.Sprintf("%s is required", field)).
		WithContext("report", report).
		WithContext("field", field)
}

// OutputWriteFailed creates an OUTPUT_WRITE_FAILED error.
func OutputWriteFailed(path string, cause error) *ReportError {
	return IOWrap(cause, ErrOutputWriteFailed, "failed to write report").
		WithContext("path", path)
}

// InternalPanic creates an INTERNAL_PANIC error for recovered panics.
func InternalPanic(recovered interface{}) *ReportError {
	return New(ErrInternalPanic, CategoryInternal, fmt.Sprintf("panic recovered: %v", recovered))
}
