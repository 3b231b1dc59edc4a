// Package tokenizer provides line tokenization using Shape's tokenizer framework.
package tokenizer

// Token type constants for one delimited line.
//
// The tokenizer emits character-level tokens only. Deciding whether a
// delimiter is a field boundary (quoting, escaping) is left to the scanner
// in internal/fields.
const (
	// Structural tokens
	TokenDelimiter = "Delimiter" // field separator
	TokenQuote     = "Quote"     // " (quoted mode only)
	TokenBackslash = "Backslash" // \ (quoted mode only)

	// Text token
	TokenText = "Text" // run of characters with no structural meaning
)
