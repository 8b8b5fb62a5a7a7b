// Package pretokenize splits text into the spans a byte pair encoding
// tokenizer merges within, reproducing the GPT-4 style split pattern
// with a hand built scanner instead of a regexp engine.
//
// The scanner walks the input once, left to right. At each position it
// tries a fixed list of rules in priority order, takes the first match,
// and emits it as a [Span] of byte offsets into the original text. The
// spans tile the input exactly: concatenating them reproduces the text
// byte for byte, which is what lets a tokenizer merge within spans and
// simply concatenate across them.
package pretokenize

import (
	"errors"
	"fmt"
	"iter"
	"unicode/utf8"
)

// ErrInvalidUTF8 reports input that is not well formed UTF-8. The rules
// classify decoded runes, so byte offsets would silently drift if broken
// sequences were patched over with replacement runes.
var ErrInvalidUTF8 = errors.New("pretokenize: input is not valid UTF-8")

// Span is a half open byte range [Start, End) into the scanned text.
// Spans from one scan tile the input: the first starts at 0, each
// subsequent one starts where the previous ended, and the last ends at
// len(text).
type Span struct {
	Start int
	End   int
}

// Scanner yields the pretoken spans of one text in order. It holds only
// the text and a cursor, so separate Scanners never share state and any
// number of them may run concurrently, including over the same text.
//
// Use [New]; the zero Scanner is exhausted over empty text.
type Scanner struct {
	text string
	pos  int
}

// New returns a Scanner over text. It fails with [ErrInvalidUTF8] when
// text is not well formed; no other scanning work happens until [Scanner.Next].
func New(text string) (*Scanner, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidUTF8
	}

	return &Scanner{text: text}, nil
}

// Next returns the next span and reports whether there was one.
func (s *Scanner) Next() (Span, bool) {
	if s.pos >= len(s.text) {
		return Span{}, false
	}

	start := s.pos
	for _, rule := range rules {
		if end := rule(s.text, start); end > start {
			s.pos = end
			return Span{Start: start, End: end}, true
		}
	}

	// The rules jointly cover every rune class, so no match means the
	// classifier or a rule is broken, not the input.
	r, _ := decodeRune(s.text, start)
	panic(fmt.Sprintf("pretokenize: no rule matched %q at offset %d", r, start))
}

// Reset rewinds the scanner to the start of its text.
func (s *Scanner) Reset() {
	s.pos = 0
}

// All returns the remaining spans as an iterator, advancing the scanner
// as it is consumed. Breaking out leaves the scanner positioned after
// the last span yielded.
func (s *Scanner) All() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for sp, ok := s.Next(); ok; sp, ok = s.Next() {
			if !yield(sp) {
				return
			}
		}
	}
}

// Spans scans text to completion and returns every span in order.
func Spans(text string) ([]Span, error) {
	s, err := New(text)
	if err != nil {
		return nil, err
	}

	var spans []Span
	for sp := range s.All() {
		spans = append(spans, sp)
	}

	return spans, nil
}

// Split scans text to completion and returns the pretokens themselves.
// The returned strings alias text rather than copy it.
func Split(text string) ([]string, error) {
	s, err := New(text)
	if err != nil {
		return nil, err
	}

	var parts []string
	for sp := range s.All() {
		parts = append(parts, text[sp.Start:sp.End])
	}

	return parts, nil
}
