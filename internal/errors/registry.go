package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Hook called outside render",
		Detail:   "UseState and UseEffect must be called while a component is being rendered by an engine.",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Hook order changed",
		Detail:   "Hooks are identified by call order. A component must call the same hooks in the same order on every render.",
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "Render root is nil",
		Detail:   "Render needs a display node to mount the resolved tree under.",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Render component is nil",
		Detail:   "Render needs a top-level node to resolve.",
	},
	"E005": {
		Category: CategoryRuntime,
		Message:  "Nothing to re-render",
		Detail:   "A re-render was requested before any explicit Render call recorded a root and component.",
	},

	// ============================================
	// Protocol Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryProtocol,
		Message:  "Unknown node id",
		Detail:   "The event targets a hydration id that is not present in the current display tree.",
	},
	"E021": {
		Category: CategoryProtocol,
		Message:  "Malformed event message",
		Detail:   "Event messages must be JSON objects with hid and event fields.",
	},
	"E022": {
		Category: CategoryProtocol,
		Message:  "Event handler panicked",
		Detail:   "A listener or a component re-rendered by it panicked while handling a client event.",
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "Port must be between 0 and 65535.",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Configuration files must end in .json, .yaml or .yml.",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No vhook.json or vhook.yaml was found.",
	},

	// ============================================
	// CLI Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryCLI,
		Message:  "Unknown demo app",
		Detail:   "The requested demo app is not registered.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces an error template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
