package pretokenize

import "testing"

// Rules report the end offset of a match or their starting offset to
// decline; these tables pin both outcomes per rule.

func TestMatchContraction(t *testing.T) {
	cases := []struct {
		in   string
		pos  int
		want int
	}{
		{"'s", 0, 2},
		{"'S", 0, 2},
		{"'d", 0, 2},
		{"'m", 0, 2},
		{"'t", 0, 2},
		{"'ll", 0, 3},
		{"'LL", 0, 3},
		{"'ve", 0, 3},
		{"'re", 0, 3},
		{"'Re", 0, 3},
		{"it's", 2, 4},
		{"'still", 0, 2},
		{"'vex", 0, 3},
		{"'l", 0, 0},
		{"'q", 0, 0},
		{"'", 0, 0},
		{"' s", 0, 0},
		{"’s", 0, 0},
		{"s", 0, 0},
		{"'么", 0, 0},
	}

	for _, tt := range cases {
		if got := matchContraction(tt.in, tt.pos); got != tt.want {
			t.Errorf("matchContraction(%q, %d) = %d, want %d", tt.in, tt.pos, got, tt.want)
		}
	}
}

func TestMatchWord(t *testing.T) {
	cases := []struct {
		in   string
		pos  int
		want int
	}{
		{"abc", 0, 3},
		{"abc1", 0, 3},
		{"!abc", 0, 4},
		{" abc", 0, 4},
		{"\tabc", 0, 4},
		{"'hello", 0, 6},
		{"ab cd", 3, 5},
		{"é", 0, 2},
		{"żółw", 0, 7},
		{"1abc", 0, 0},
		{"\nabc", 0, 0},
		{"\rabc", 0, 0},
		{"--abc", 0, 0},
		{"  abc", 0, 0},
		{"!", 0, 0},
		{" ", 0, 0},
	}

	for _, tt := range cases {
		if got := matchWord(tt.in, tt.pos); got != tt.want {
			t.Errorf("matchWord(%q, %d) = %d, want %d", tt.in, tt.pos, got, tt.want)
		}
	}
}

func TestMatchNumber(t *testing.T) {
	cases := []struct {
		in   string
		pos  int
		want int
	}{
		{"1", 0, 1},
		{"12", 0, 2},
		{"123", 0, 3},
		{"12345", 0, 3},
		{"12a", 0, 2},
		{"٣٤", 0, 4},
		{"½", 0, 2},
		{"Ⅻ", 0, 3},
		{"a1", 0, 0},
		{" 1", 0, 0},
		{"x", 0, 0},
	}

	for _, tt := range cases {
		if got := matchNumber(tt.in, tt.pos); got != tt.want {
			t.Errorf("matchNumber(%q, %d) = %d, want %d", tt.in, tt.pos, got, tt.want)
		}
	}
}

func TestMatchPunct(t *testing.T) {
	cases := []struct {
		in   string
		pos  int
		want int
	}{
		{"!", 0, 1},
		{"!!", 0, 2},
		{" !!", 0, 3},
		{" !", 0, 2},
		{"!a", 0, 1},
		{"!1", 0, 1},
		{"!!\n\n", 0, 4},
		{"!\r\nx", 0, 3},
		{" ...world", 0, 4},
		{"€50", 0, 3},
		{"👍🏽", 0, 8},
		{"  !", 0, 0},
		{"\t!", 0, 0},
		{" a", 0, 0},
		{"a!", 0, 0},
		{" ", 0, 0},
		{"\n!", 0, 0},
	}

	for _, tt := range cases {
		if got := matchPunct(tt.in, tt.pos); got != tt.want {
			t.Errorf("matchPunct(%q, %d) = %d, want %d", tt.in, tt.pos, got, tt.want)
		}
	}
}

func TestMatchNewlineRun(t *testing.T) {
	cases := []struct {
		in   string
		pos  int
		want int
	}{
		{"\n", 0, 1},
		{"\r\n", 0, 2},
		{"\n\n\n", 0, 3},
		{" \n", 0, 2},
		{"\t \n", 0, 3},
		{" \n \n ", 0, 4},
		{"\n x", 0, 1},
		{"\n\t\nx", 0, 3},
		{"a\n", 0, 0},
		{"  x", 0, 0},
		{" ", 0, 0},
	}

	for _, tt := range cases {
		if got := matchNewlineRun(tt.in, tt.pos); got != tt.want {
			t.Errorf("matchNewlineRun(%q, %d) = %d, want %d", tt.in, tt.pos, got, tt.want)
		}
	}
}

func TestMatchTrailingSpace(t *testing.T) {
	cases := []struct {
		in   string
		pos  int
		want int
	}{
		{"   ", 0, 3},
		{" ", 0, 1},
		{"\t\t", 0, 2},
		{"a   ", 1, 4},
		{"  x", 0, 1},
		{"   x", 0, 2},
		{"\t\tx", 0, 1},
		{" \u00a0", 0, 3},
		{"\u00a0\u00a0x", 0, 2},
		{" x", 0, 0},
		{"\u00a0x", 0, 0},
		{"x ", 0, 0},
	}

	for _, tt := range cases {
		if got := matchTrailingSpace(tt.in, tt.pos); got != tt.want {
			t.Errorf("matchTrailingSpace(%q, %d) = %d, want %d", tt.in, tt.pos, got, tt.want)
		}
	}
}

func TestMatchSpaceRun(t *testing.T) {
	cases := []struct {
		in   string
		pos  int
		want int
	}{
		{" ", 0, 1},
		{" x", 0, 1},
		{"\tx", 0, 1},
		{"  x", 0, 2},
		{"\u3000x", 0, 3},
		{"a b", 1, 2},
		{"x", 0, 0},
	}

	for _, tt := range cases {
		if got := matchSpaceRun(tt.in, tt.pos); got != tt.want {
			t.Errorf("matchSpaceRun(%q, %d) = %d, want %d", tt.in, tt.pos, got, tt.want)
		}
	}
}

// Rules never match empty and never overrun the input.
func TestRulesProgress(t *testing.T) {
	inputs := []string{
		"a", "1", "!", " ", "\n", "\t", "'s", "é", "٣", "中", "👍",
		"a b", " \n", "'tis", "123", "!?", "\u00a0",
	}

	for _, in := range inputs {
		for i := 0; i < len(in); {
			_, w := decodeRune(in, i)
			for ri, rule := range rules {
				end := rule(in, i)
				if end < i || end > len(in) {
					t.Fatalf("rule %d on %q at %d returned %d", ri, in, i, end)
				}
			}
			i += w
		}
	}
}
