package errors

// Registered error codes.
const (
	CodeInvalidTag     = "X001"
	CodeInvalidNode    = "X002"
	CodeMaxDepth       = "X003"
	CodeDocumentSyntax = "X010"
	CodeDocumentShape  = "X011"
	CodeConfigNotFound = "X020"
	CodeConfigInvalid  = "X021"
	CodeUsage          = "X030"
)

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
	// Build and render errors (X001-X009)
	// ============================================

	CodeInvalidTag: {
		Category: CategoryBuild,
		Message:  "Invalid element tag",
		Detail:   "An element tag must be a TagName or a non-nil Component.",
		DocURL:   "https://vango.dev/docs/vxml/errors/X001",
	},
	CodeInvalidNode: {
		Category: CategoryRender,
		Message:  "Invalid node",
		Detail:   "Only element, text, number and boolean nodes can be rendered. Nil nodes and nil children are rejected.",
		DocURL:   "https://vango.dev/docs/vxml/errors/X002",
	},
	CodeMaxDepth: {
		Category: CategoryRender,
		Message:  "Maximum render depth exceeded",
		Detail:   "The tree is deeper than the configured limit. This usually means a node is its own ancestor.",
		DocURL:   "https://vango.dev/docs/vxml/errors/X003",
	},

	// ============================================
	// Document errors (X010-X019)
	// ============================================

	CodeDocumentSyntax: {
		Category: CategoryDocument,
		Message:  "Document is not valid YAML or JSON",
		DocURL:   "https://vango.dev/docs/vxml/errors/X010",
	},
	CodeDocumentShape: {
		Category: CategoryDocument,
		Message:  "Invalid document structure",
		Detail:   "A node is a scalar or a mapping with 'tag', optional 'attrs' and optional 'children'.",
		DocURL:   "https://vango.dev/docs/vxml/errors/X011",
	},

	// ============================================
	// Config errors (X020-X029)
	// ============================================

	CodeConfigNotFound: {
		Category: CategoryConfig,
		Message:  "Config file not found",
		DocURL:   "https://vango.dev/docs/vxml/errors/X020",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		DocURL:   "https://vango.dev/docs/vxml/errors/X021",
	},

	// ============================================
	// CLI errors (X030-X039)
	// ============================================

	CodeUsage: {
		Category: CategoryCLI,
		Message:  "Invalid command usage",
		DocURL:   "https://vango.dev/docs/vxml/errors/X030",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
