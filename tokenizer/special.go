package tokenizer

import (
	"slices"
	"strings"
)

// fragment is a piece of input text and, once known, its token ids.
type fragment struct {
	value string
	ids   []int32
}

// splitSpecialTokens splits s into fragments, extracting special tokens
// defined in the vocabulary. Specials are matched in vocabulary order,
// so at overlapping positions the earlier entry wins.
//
// TODO: build an Aho-Corasick matcher once per vocabulary; this rescans
// every fragment for every special token.
func splitSpecialTokens(s string, vocab *Vocabulary) []fragment {
	fragments := []fragment{{value: s}}
	for _, special := range vocab.SpecialVocabulary() {
		if !strings.Contains(s, special) {
			continue
		}

		id := vocab.Encode(special)
		for i := 0; i < len(fragments); i++ {
			frag := fragments[i]
			if len(frag.ids) > 0 {
				continue
			}

			var middle []fragment
			switch idx := strings.Index(frag.value, special); {
			case idx < 0:
				middle = append(middle, frag)
			case idx > 0:
				middle = append(middle, fragment{value: frag.value[:idx]})
				fallthrough
			default:
				middle = append(middle, fragment{value: special, ids: []int32{id}})
				if rest := frag.value[idx+len(special):]; rest != "" {
					middle = append(middle, fragment{value: rest})
				}
			}

			fragments = slices.Replace(fragments, i, i+1, middle...)
		}
	}

	return fragments
}
