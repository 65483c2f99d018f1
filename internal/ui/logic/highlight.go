package logic

import (
	"sort"
	"strings"
	"unicode"
)

// span is a half-open [start, end) byte range in the original text
type span struct {
	start, end int
}

// EmphasizeTerms wraps every case-insensitive occurrence of the given
// terms in the snippet with the emphasize function. All match spans are
// collected in one pass over the untouched original text, overlapping
// spans are merged, and the output is built in a single left-to-right
// rewrite. A term can therefore never match markup introduced for an
// earlier term.
func EmphasizeTerms(snippet string, terms []string, emphasize func(string) string) string {
	if snippet == "" || len(terms) == 0 || emphasize == nil {
		return snippet
	}

	lower, origAt := foldOffsets(snippet)
	var spans []span
	for _, term := range terms {
		t := strings.ToLower(term)
		if t == "" {
			continue
		}
		for from := 0; from < len(lower); {
			i := strings.Index(lower[from:], t)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(t)
			// A match must align with rune boundaries of the folded text
			if origAt[start] < 0 || origAt[end] < 0 {
				from = start + 1
				continue
			}
			spans = append(spans, span{start: origAt[start], end: origAt[end]})
			from = end
		}
	}
	if len(spans) == 0 {
		return snippet
	}

	merged := mergeSpans(spans)

	var b strings.Builder
	b.Grow(len(snippet) + len(merged)*8)
	prev := 0
	for _, s := range merged {
		b.WriteString(snippet[prev:s.start])
		b.WriteString(emphasize(snippet[s.start:s.end]))
		prev = s.end
	}
	b.WriteString(snippet[prev:])
	return b.String()
}

// foldOffsets lowers the text rune by rune and records, for every byte
// offset in the folded text that starts a rune, the offset of that rune
// in the original (-1 on interior bytes, plus a final entry for the end
// of the text). Lowering can change a rune's byte length, so folded
// offsets can never be applied to the original text directly.
func foldOffsets(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	origAt := make([]int, 0, len(s)+1)
	for i, r := range s {
		b.WriteRune(unicode.ToLower(r))
		origAt = append(origAt, i)
		for len(origAt) < b.Len() {
			origAt = append(origAt, -1)
		}
	}
	origAt = append(origAt, len(s))
	return b.String(), origAt
}

// mergeSpans sorts spans and coalesces overlapping or touching ones
func mergeSpans(spans []span) []span {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
