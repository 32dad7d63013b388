// Package brace expands shell-style brace patterns into path lists.
//
// A pattern is literal text with {...} groups. A group holds comma separated
// alternatives, each of which may nest further groups or be a range such as
// 1..3 or a..c. Expansion never fails: malformed braces, ranges mixing
// letter case, and groups that would produce more than MaxPaths results are
// kept as text.
package brace

import (
	"sort"
	"strconv"
	"strings"
)

// MaxPaths bounds how many results a single group, together with everything
// after it, may expand to.
const MaxPaths = 10000

// Expand returns every path the pattern describes, deduplicated and sorted.
//
//	Expand("app/{src,docs}/README.md")
//	// [app/docs/README.md app/src/README.md]
func Expand(pattern string) []string {
	set := make(map[string]struct{})
	for _, p := range expand(pattern) {
		set[p] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func expand(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}

	end := matchingBrace(pattern, open)
	if end < 0 {
		return []string{pattern}
	}

	prefix := pattern[:open]
	suffixes := expand(pattern[end+1:])

	var heads []string
	for _, alt := range alternatives(pattern[open+1 : end]) {
		heads = append(heads, expandAlternative(alt)...)
		if len(heads) > MaxPaths {
			break
		}
	}
	if len(heads)*len(suffixes) > MaxPaths {
		heads = []string{pattern[open : end+1]}
	}

	out := make([]string, 0, len(heads)*len(suffixes))
	for _, head := range heads {
		for _, tail := range suffixes {
			out = append(out, prefix+head+tail)
		}
	}
	return out
}

// matchingBrace returns the index of the '}' closing the '{' at open, or -1.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// alternatives splits a group body on commas that sit outside nested groups.
// An empty body yields a single empty alternative.
func alternatives(body string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, body[start:])
}

func expandAlternative(alt string) []string {
	if seq, ok := sequence(alt); ok {
		return seq
	}
	return expand(alt)
}

// sequence expands X..Y when both ends are integers or both single letters
// of the same case, and the range holds at most MaxPaths values.
func sequence(alt string) ([]string, bool) {
	from, to, found := strings.Cut(alt, "..")
	if !found || from == "" || to == "" || strings.ContainsAny(alt, "{}") {
		return nil, false
	}

	if a, errA := strconv.Atoi(from); errA == nil {
		b, errB := strconv.Atoi(to)
		if errB != nil || !withinLimit(a, b) {
			return nil, false
		}
		width := 0
		if padded(from) || padded(to) {
			width = max(len(strings.TrimPrefix(from, "-")), len(strings.TrimPrefix(to, "-")))
		}
		var out []string
		for _, n := range steps(a, b) {
			out = append(out, pad(n, width))
		}
		return out, true
	}

	if isLetter(from) && isLetter(to) && isUpper(from[0]) == isUpper(to[0]) {
		var out []string
		for _, c := range steps(int(from[0]), int(to[0])) {
			out = append(out, string(rune(c)))
		}
		return out, true
	}
	return nil, false
}

// withinLimit reports whether a..b holds at most MaxPaths values. A span
// that overflows int wraps negative.
func withinLimit(a, b int) bool {
	span := max(a, b) - min(a, b)
	return span >= 0 && span < MaxPaths
}

func steps(a, b int) []int {
	step := 1
	if a > b {
		step = -1
	}
	out := make([]int, 0, (b-a)*step+1)
	for n := a; ; n += step {
		out = append(out, n)
		if n == b {
			return out
		}
	}
}

func padded(s string) bool {
	s = strings.TrimPrefix(s, "-")
	return len(s) > 1 && s[0] == '0'
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if width == 0 {
		return s
	}
	neg := n < 0
	if neg {
		s = s[1:]
	}
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	if neg {
		s = "-" + s
	}
	return s
}

func isLetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || isUpper(c)
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
