package pretokenize

import "unicode/utf8"

// A rule reports the end offset of its match starting at byte offset i,
// or i to decline. A match always consumes at least one byte; the scanner
// relies on that for forward progress.
//
// rules are tried in order and the first match wins, mirroring the
// alternation of the split pattern the scanner replaces:
//
//	(?i:'s|'t|'re|'ve|'m|'ll|'d)
//	[^\r\n\p{L}\p{N}]?\p{L}+
//	\p{N}{1,3}
//	 ?[^\s\p{L}\p{N}]+[\r\n]*
//	\s*[\r\n]+
//	\s+(?!\S)
//	\s+
//
// Quantifiers in these branches behave possessively: a rule never gives
// back input so that a shorter parse of the same branch could win. The
// one place the pattern's lookahead forces a shorter match, trailing
// whitespace before a visible rune, is resolved inside matchTrailingSpace
// during its single forward scan.
var rules = [...]func(string, int) int{
	matchContraction,
	matchWord,
	matchNumber,
	matchPunct,
	matchNewlineRun,
	matchTrailingSpace,
	matchSpaceRun,
}

// decodeRune is utf8.DecodeRuneInString with the ASCII case inlined.
func decodeRune(s string, i int) (rune, int) {
	if b := s[i]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(s[i:])
}

// matchContraction matches an apostrophe followed by one of the English
// clitic suffixes s, d, m, t, ll, ve, re, ignoring ASCII case. Only the
// plain U+0027 apostrophe counts. There is no word boundary check after
// the suffix, so "that'still" yields 's with "till" left over, exactly
// like the pattern.
func matchContraction(s string, i int) int {
	if s[i] != '\'' {
		return i
	}

	// Two letter suffixes first so 'll beats a bare 'l miss. The |0x20
	// fold maps only A..Z onto a..z; bytes outside ASCII letters cannot
	// collide with the suffix literals.
	if i+2 < len(s) {
		switch a, b := s[i+1]|0x20, s[i+2]|0x20; {
		case a == 'l' && b == 'l', a == 'v' && b == 'e', a == 'r' && b == 'e':
			return i + 3
		}
	}

	if i+1 < len(s) {
		switch s[i+1] | 0x20 {
		case 's', 'd', 'm', 't':
			return i + 2
		}
	}

	return i
}

// matchWord matches an optional single rune that is not a letter, number,
// or CR/LF, then one or more letters. The lead rune counts only when
// letters follow; the rule declines outright rather than hand a consumed
// lead to a later rule.
func matchWord(s string, i int) int {
	j := i
	r, w := decodeRune(s, j)
	if c := classify(r); c != catLetter && c != catNumber && c != catNewline {
		j += w
	}

	start := j
	for j < len(s) {
		r, w := decodeRune(s, j)
		if classify(r) != catLetter {
			break
		}
		j += w
	}

	if j == start {
		return i
	}

	return j
}

// matchNumber matches one to three number runes. Longer digit runs come
// out as successive spans of three, which keeps numeric pretokens short
// for the merge layer.
func matchNumber(s string, i int) int {
	j := i
	for range 3 {
		if j >= len(s) {
			break
		}

		r, w := decodeRune(s, j)
		if classify(r) != catNumber {
			break
		}
		j += w
	}

	if j == i {
		return i
	}

	return j
}

// matchPunct matches an optional single leading space (U+0020 only, not
// tab), one or more runes that are neither whitespace nor letters nor
// numbers, then any run of CR/LF. The trailing newlines ride along in the
// same span, which is what keeps "!!\n\n" together.
func matchPunct(s string, i int) int {
	j := i
	if s[j] == ' ' {
		j++
	}

	start := j
	for j < len(s) {
		r, w := decodeRune(s, j)
		if classify(r) != catOther {
			break
		}
		j += w
	}

	if j == start {
		return i
	}

	for j < len(s) {
		r, w := decodeRune(s, j)
		if classify(r) != catNewline {
			break
		}
		j += w
	}

	return j
}

// matchNewlineRun matches whitespace that ends in a newline: it scans the
// maximal whitespace run from i and cuts just past the last CR or LF in
// it. The pattern's greedy \s* absorbs interior newlines, so the cut
// falls after the final newline of the run, never the first.
func matchNewlineRun(s string, i int) int {
	end := i
	for j := i; j < len(s); {
		r, w := decodeRune(s, j)
		c := classify(r)
		if c != catSpace && c != catNewline {
			break
		}

		j += w
		if c == catNewline {
			end = j
		}
	}

	return end
}

// matchTrailingSpace matches a whitespace run that no visible rune cuts
// short: the whole run when it reaches end of input, otherwise the run
// minus its last rune, so that what remains is still not followed by a
// visible rune. A single space before a visible rune declines here and
// falls through to matchSpaceRun.
func matchTrailingSpace(s string, i int) int {
	j, last := i, 0
	for j < len(s) {
		r, w := decodeRune(s, j)
		c := classify(r)
		if c != catSpace && c != catNewline {
			break
		}

		j, last = j+w, w
	}

	switch {
	case j == i:
		return i
	case j == len(s):
		return j
	case j-last > i:
		return j - last
	}

	return i
}

// matchSpaceRun matches one or more whitespace runes. Everything the
// earlier whitespace rules declined lands here, in practice a single
// space or tab directly before a visible rune.
func matchSpaceRun(s string, i int) int {
	j := i
	for j < len(s) {
		r, w := decodeRune(s, j)
		c := classify(r)
		if c != catSpace && c != catNewline {
			break
		}
		j += w
	}

	return j
}
