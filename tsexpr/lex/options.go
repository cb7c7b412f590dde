package lex

// Options configures how the reader recognizes delimiters, variable
// references, and numeric literals. The zero Options is not valid for use;
// callers should start from Default().
type Options struct {
	OpeningDelim byte
	ClosingDelim byte
	VarSymbol    byte
	StrictSyntax bool

	// HexPrefix, if non-zero, is the character following a leading "0" that
	// switches an atom to unsigned hexadecimal parsing (e.g. 'x' recognizes
	// "0x1F"). Zero disables hex parsing entirely.
	HexPrefix byte
}

// Default returns the spec's default option set: '[' / ']' delimiters, '.'
// variable sigil, lenient syntax, no hex prefix.
func Default() Options {
	return Options{
		OpeningDelim: '[',
		ClosingDelim: ']',
		VarSymbol:    '.',
		StrictSyntax: false,
		HexPrefix:    0,
	}
}
