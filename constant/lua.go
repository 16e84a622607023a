package constant

// Global functions a custom endpoint script must define.
const (
	RequestFn = "request"
	ParseFn   = "parse"
)
