// Package tokenizer implements byte pair encoding on top of the span
// scanner, with the vocabulary and special token handling a GGUF style
// model vocabulary provides.
package tokenizer

import (
	"cmp"
	"fmt"
	"log/slog"
	"strings"

	heap "github.com/emirpasic/gods/v2/trees/binaryheap"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ollama/pretokenize"
	"github.com/ollama/pretokenize/logutil"
)

type TextProcessor interface {
	Encode(s string, addSpecial bool) ([]int32, error)
	Decode([]int32) (string, error)
	Is(id int32, special Special) bool
	Vocabulary() *Vocabulary
}

// spanCacheSize bounds the span to ids cache. Natural text repeats its
// spans heavily, so a small cache absorbs most of the merge work.
const spanCacheSize = 8192

type BytePairEncoding struct {
	vocab *Vocabulary
	cache *lru.Cache[string, []int32]
}

var _ TextProcessor = (*BytePairEncoding)(nil)

func NewBytePairEncoding(vocab *Vocabulary) BytePairEncoding {
	cache, _ := lru.New[string, []int32](spanCacheSize)
	return BytePairEncoding{
		vocab: vocab,
		cache: cache,
	}
}

func (bpe BytePairEncoding) Vocabulary() *Vocabulary {
	return bpe.vocab
}

func (bpe BytePairEncoding) Is(id int32, special Special) bool {
	return bpe.vocab.Is(id, special)
}

// pair is a candidate merge of two neighboring symbols and its rank.
type pair struct {
	a, b  int
	rank  int
	value string
}

// merge is a node in a doubly linked list over the symbols of one span.
type merge struct {
	p, n  int
	runes []rune
}

func (bpe BytePairEncoding) Encode(s string, addSpecial bool) ([]int32, error) {
	var ids []int32
	for _, frag := range splitSpecialTokens(s, bpe.vocab) {
		if len(frag.ids) > 0 {
			ids = append(ids, frag.ids...)
			continue
		}

		parts, err := pretokenize.Split(frag.value)
		if err != nil {
			return nil, err
		}

		for _, part := range parts {
			ids = append(ids, bpe.encodeSpan(part)...)
		}
	}

	if addSpecial {
		ids = bpe.vocab.addSpecials(ids)
	}

	logutil.Trace("encoded", "string", s, "ids", ids)
	return ids, nil
}

func (bpe BytePairEncoding) encodeSpan(s string) []int32 {
	if ids, ok := bpe.cache.Get(s); ok {
		return ids
	}

	// Rewrite each byte as the printable rune a byte level vocabulary
	// stores it under.
	var sb strings.Builder
	for _, b := range []byte(s) {
		r := rune(b)
		switch {
		case r == 0x00ad:
			r = 0x0143
		case r <= 0x0020:
			r = r + 0x0100
		case r >= 0x007f && r <= 0x00a0:
			r = r + 0x00a2
		}

		sb.WriteRune(r)
	}

	// short circuit if the span is already a token
	if id := bpe.vocab.Encode(sb.String()); id >= 0 {
		ids := []int32{id}
		bpe.cache.Add(s, ids)
		return ids
	}

	runes := []rune(sb.String())
	merges := make([]merge, len(runes))
	for r := range runes {
		merges[r] = merge{
			p:     r - 1,
			n:     r + 1,
			runes: []rune{runes[r]},
		}
	}

	pairwise := func(a, b int) *pair {
		if a < 0 || b >= len(runes) {
			return nil
		}

		left, right := string(merges[a].runes), string(merges[b].runes)
		rank := bpe.vocab.Merge(left, right)
		if rank < 0 {
			return nil
		}

		return &pair{
			a:     a,
			b:     b,
			rank:  rank,
			value: left + right,
		}
	}

	pairs := heap.NewWith(func(i, j *pair) int {
		return cmp.Compare(i.rank, j.rank)
	})

	for i := range len(runes) - 1 {
		if pair := pairwise(i, i+1); pair != nil {
			pairs.Push(pair)
		}
	}

	for !pairs.Empty() {
		pair, _ := pairs.Pop()

		left, right := merges[pair.a], merges[pair.b]
		if len(left.runes) == 0 || len(right.runes) == 0 ||
			string(left.runes)+string(right.runes) != pair.value {
			// stale entry; the neighborhood merged underneath it
			continue
		}

		if id := bpe.vocab.Encode(pair.value); id < 0 {
			continue
		}

		merges[pair.a].runes = append(left.runes, right.runes...)
		merges[pair.b].runes = nil

		merges[pair.a].n = right.n
		if right.n < len(merges) {
			merges[right.n].p = pair.a
		}

		if pair := pairwise(merges[pair.a].p, pair.a); pair != nil {
			pairs.Push(pair)
		}

		if pair := pairwise(pair.a, merges[pair.a].n); pair != nil {
			pairs.Push(pair)
		}
	}

	var ids []int32
	for _, merge := range merges {
		if len(merge.runes) > 0 {
			// TODO: handle the edge case where the symbol isn't in the vocabulary
			if id := bpe.vocab.Encode(string(merge.runes)); id >= 0 {
				ids = append(ids, id)
			}
		}
	}

	bpe.cache.Add(s, ids)
	return ids
}

type lazyIdsString struct {
	ids []int32
}

func (l lazyIdsString) LogValue() slog.Value {
	return slog.AnyValue(fmt.Sprint(l.ids))
}

func (bpe BytePairEncoding) Decode(ids []int32) (string, error) {
	var sb strings.Builder
	for _, id := range ids {
		for _, r := range bpe.vocab.Decode(id) {
			switch {
			case r == 0x0100:
				// this produces 0x00 aka NULL
				continue
			case r == 0x0143:
				r = 0x00ad
			case r > 0x0100 && r <= 0x0120:
				r = r - 0x0100
			case r > 0x0120 && r <= 0x0142:
				r = r - 0x00a2
			}

			// NOTE: not using WriteRune here because it writes the UTF-8
			// encoding of the rune which is _not_ what we want
			if err := sb.WriteByte(byte(r)); err != nil {
				return "", err
			}
		}
	}

	logutil.Trace("decoded", "string", sb.String(), "from", lazyIdsString{ids: ids})
	return sb.String(), nil
}
