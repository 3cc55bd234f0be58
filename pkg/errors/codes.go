package errors

// -----------------------------------------------------------------------------
// Configuration Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = "CONFIG_NOT_FOUND"

	// ErrConfigParseFailed indicates the configuration file is not valid YAML.
	ErrConfigParseFailed = "CONFIG_PARSE_FAILED"

	// ErrConfigInvalid indicates configuration values are invalid,
	// e.g. a page geometry with no room for content.
	ErrConfigInvalid = "CONFIG_INVALID"

	// ErrConfigWriteFailed indicates the config file could not be written.
	ErrConfigWriteFailed = "CONFIG_WRITE_FAILED"
)

// -----------------------------------------------------------------------------
// Input Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrInputMissing indicates a required report input was nil or empty.
	ErrInputMissing = "INPUT_MISSING"

	// ErrInputReadFailed indicates an input file could not be read.
	ErrInputReadFailed = "INPUT_READ_FAILED"

	// ErrInputParseFailed indicates an input file is not valid JSON or YAML.
	ErrInputParseFailed = "INPUT_PARSE_FAILED"
)

// -----------------------------------------------------------------------------
// Render and Output Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrRenderFailed indicates the drawing surface reported an error.
	ErrRenderFailed = "RENDER_FAILED"

	// ErrOutputWriteFailed indicates the finished document could not be saved.
	ErrOutputWriteFailed = "OUTPUT_WRITE_FAILED"

	// ErrInternalPanic indicates a recovered panic.
	ErrInternalPanic = "INTERNAL_PANIC"
)

// CodeCategory returns the category for a given error code.
// Returns CategoryInternal if the code is not recognized.
func CodeCategory(code string) Category {
	switch code {
	case ErrConfigNotFound, ErrConfigParseFailed, ErrConfigInvalid, ErrConfigWriteFailed:
		return CategoryConfig
	case ErrInputMissing, ErrInputReadFailed, ErrInputParseFailed:
		return CategoryInput
	case ErrRenderFailed:
		return CategoryRender
	case ErrOutputWriteFailed:
		return CategoryIO
	default:
		return CategoryInternal
	}
}
