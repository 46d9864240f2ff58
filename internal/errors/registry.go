package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Invalid navstack.json",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   "https://navstack.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No navstack.json was found in the project directory.",
		DocURL:   "https://navstack.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid listen address",
		Detail:   "The server port must be between 0 and 65535.",
		DocURL:   "https://navstack.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid snapshot backend",
		Detail:   "The snapshot backend must be one of: memory, redis, s3.",
		DocURL:   "https://navstack.dev/docs/errors/E103",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Incomplete snapshot backend settings",
		Detail:   "The selected snapshot backend is missing required settings.",
		DocURL:   "https://navstack.dev/docs/errors/E104",
	},

	// ============================================
	// Route Manifest Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryRoutes,
		Message:  "Invalid routes manifest",
		Detail:   "The routes manifest could not be read or parsed as YAML.",
		DocURL:   "https://navstack.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryRoutes,
		Message:  "Routes manifest not found",
		Detail:   "No routes manifest was found at the configured path.",
		DocURL:   "https://navstack.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryRoutes,
		Message:  "Empty routes manifest",
		Detail:   "The routes manifest must declare at least one route.",
		DocURL:   "https://navstack.dev/docs/errors/E122",
	},
	"E123": {
		Category: CategoryRoutes,
		Message:  "Invalid route declaration",
		Detail:   "Each route needs a non-empty path starting with '/'.",
		DocURL:   "https://navstack.dev/docs/errors/E123",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Server failed to start",
		Detail:   "The HTTP listener could not be started.",
		DocURL:   "https://navstack.dev/docs/errors/E140",
	},
	"E141": {
		Category: CategorySnapshot,
		Message:  "Snapshot store unavailable",
		Detail:   "The configured snapshot store could not be reached.",
		DocURL:   "https://navstack.dev/docs/errors/E141",
	},
}
