package util

// Byte classification used by the charon tokenizer. Identifiers and keywords are
// ASCII only, anything outside these classes is left for the catch-all category.

func IsNumber(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsUnderScore(b byte) bool {
	return b == '_'
}

func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsIdentifierStart reports whether b may start an identifier: [A-Za-z_].
func IsIdentifierStart(b byte) bool {
	return IsLetter(b) || IsUnderScore(b)
}

// IsIdentifierPart reports whether b may continue an identifier: [A-Za-z0-9_].
func IsIdentifierPart(b byte) bool {
	return IsLetter(b) || IsUnderScore(b) || IsNumber(b)
}

// IsWhiteSpace only accepts the four separators of the language. Other unicode
// spaces (form feed, NBSP...) are not whitespace in charon.
func IsWhiteSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func IsNewLine(b byte) bool {
	return b == '\n'
}
