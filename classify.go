package pretokenize

import "unicode"

// category partitions runes into the classes the split rules dispatch on.
// Carriage return and line feed get a class of their own: three of the
// rules treat them differently from other whitespace, so they must never
// come back as plain space from a lookup.
type category uint8

const (
	catOther category = iota
	catLetter
	catNumber
	catSpace
	catNewline
)

// latin1 caches the classification of the first 256 runes. Almost every
// lookup on typical text lands here; runes above U+00FF fall through to
// the unicode range tables.
var latin1 [256]category

func init() {
	for r := range rune(256) {
		latin1[r] = classifyRune(r)
	}
}

func classify(r rune) category {
	if r < 256 {
		return latin1[r]
	}
	return classifyRune(r)
}

func classifyRune(r rune) category {
	switch {
	case r == '\r' || r == '\n':
		return catNewline
	case unicode.IsLetter(r):
		return catLetter
	case unicode.IsNumber(r):
		return catNumber
	case unicode.IsSpace(r):
		return catSpace
	}
	return catOther
}
