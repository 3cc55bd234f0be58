package errors

import (
	"runtime"
	"sort"
)

// Context keys used to select conditional suggestions.
const (
	ContextOS = "os"
)

// OS values for platform-specific suggestions.
const (
	OSLinux   = "linux"
	OSDarwin  = "darwin"
	OSWindows = "windows"
)

// Suggestion is a remediation hint with optional context conditions.
type Suggestion struct {
	Text string

	// Conditions must all match the error context. Empty matches everything.
	Conditions map[string]string

	// Priority orders suggestions, highest first.
	Priority int
}

// Matches returns true if this suggestion's conditions match the given context.
func (s *Suggestion) Matches(ctx map[string]string) bool {
	for key, value := range s.Conditions {
		if ctx[key] != value {
			return false
		}
	}
	return true
}

// Registry maps error codes to their remediation suggestions.
type Registry struct {
	suggestions map[string][]Suggestion
}

// NewRegistry creates an empty suggestion registry.
func NewRegistry() *Registry {
	return &Registry{suggestions: make(map[string][]Suggestion)}
}

// Register adds a suggestion for an error code.
func (r *Registry) Register(code, text string) *Registry {
	return r.RegisterSuggestion(code, Suggestion{Text: text})
}

// RegisterWithCondition adds a suggestion that only applies when ctx matches.
func (r *Registry) RegisterWithCondition(code, text string, conditions map[string]string) *Registry {
	return r.RegisterSuggestion(code, Suggestion{Text: text, Conditions: conditions})
}

// RegisterSuggestion adds a complete Suggestion.
func (r *Registry) RegisterSuggestion(code string, suggestion Suggestion) *Registry {
	r.suggestions[code] = append(r.suggestions[code], suggestion)
	return r
}

// Get returns the suggestion texts for code that match ctx, highest priority first.
func (r *Registry) Get(code string, ctx map[string]string) []string {
	var matching []Suggestion
	for _, s := range r.suggestions[code] {
		if s.Matches(ctx) {
			matching = append(matching, s)
		}
	}
	if len(matching) == 0 {
		return nil
	}
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Priority > matching[j].Priority
	})

	result := make([]string, len(matching))
	for i, s := range matching {
		result[i] = s.Text
	}
	return result
}

// HasSuggestions returns true if any suggestions exist for the error code.
func (r *Registry) HasSuggestions(code string) bool {
	return len(r.suggestions[code]) > 0
}

// DefaultContext returns a context map with current platform information.
func DefaultContext() map[string]string {
	return map[string]string{ContextOS: runtime.GOOS}
}

// MergeContext combines context maps; later maps win.
func MergeContext(contexts ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, ctx := range contexts {
		for k, v := range ctx {
			result[k] = v
		}
	}
	return result
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the global registry with built-in suggestions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// GetSuggestions returns suggestions for code using the current platform context.
func GetSuggestions(code string) []string {
	return defaultRegistry.Get(code, DefaultContext())
}

// AttachSuggestions adds registry suggestions to err, matched against its context.
func AttachSuggestions(err *ReportError) *ReportError {
	if err == nil {
		return nil
	}
	ctx := MergeContext(DefaultContext(), err.Context)
	if s := defaultRegistry.Get(err.Code, ctx); len(s) > 0 {
		err.Suggestions = append(err.Suggestions, s...)
	}
	return err
}

func init() {
	defaultRegistry.
		Register(ErrConfigNotFound, "Run 'reportgen init' to create a default configuration file").
		RegisterWithCondition(ErrConfigNotFound,
			"Check that ~/.config/multitool/config.yaml exists",
			map[string]string{ContextOS: OSLinux}).
		RegisterWithCondition(ErrConfigNotFound,
			"On macOS, config may be at ~/Library/Application Support/multitool/config.yaml",
			map[string]string{ContextOS: OSDarwin})

	defaultRegistry.
		Register(ErrConfigParseFailed, "Check your config file for YAML syntax errors").
		Register(ErrConfigParseFailed, "Common issues: incorrect indentation, missing colons, or tabs")

	defaultRegistry.
		Register(ErrConfigInvalid, "Review the error context for which field is invalid").
		Register(ErrConfigInvalid, "Run 'reportgen init --force' to regenerate the defaults")

	defaultRegistry.
		Register(ErrConfigWriteFailed, "Ensure you have write access to the config directory")

	defaultRegistry.
		RegisterSuggestion(ErrInputMissing, Suggestion{
			Text:     "Provide the missing field in the input file",
			Priority: 1,
		}).
		Register(ErrInputMissing, "See 'reportgen <report> --help' for the expected input shape")

	defaultRegistry.
		Register(ErrInputReadFailed, "Check that the input path exists and is readable")

	defaultRegistry.
		Register(ErrInputParseFailed, "Input files must be JSON (.json) or YAML (.yaml, .yml)")

	defaultRegistry.
		Register(ErrOutputWriteFailed, "Check that the output directory exists and is writable").
		Register(ErrOutputWriteFailed, "Free up disk space or choose a different --output directory")
}
