package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// NormalizeUnicode converts text to NFC so composed and decomposed accents compare equal.
func (s *StringHelper) NormalizeUnicode(str string) string {
	return norm.NFC.String(str)
}

// NormalizeNewlines turns CRLF and lone CR into LF, as the HTML tokenizer does
// for literal line breaks. Carriage returns still reach text through &#13;.
func (s *StringHelper) NormalizeNewlines(str string) string {
	return strings.ReplaceAll(strings.ReplaceAll(str, "\r\n", "\n"), "\r", "\n")
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TruncateString truncates string to max runes.
func (s *StringHelper) TruncateString(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	return string(runes[:maxLength]) + "..."
}
