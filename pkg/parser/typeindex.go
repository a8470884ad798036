package parser

import (
	"sort"
	"strings"
	"unicode"
)

type (
	// span is a half-open byte range [start, end) of the indexed text.
	span struct {
		start, end int
	}

	// level is the bracket depth in front of a byte.
	level struct {
		angle, brace int
	}

	// typeIndex records the bracket structure of a type expression in a
	// single pass. Sub-expressions are then handled as spans of the same text,
	// so splitting at any depth is a lookup instead of a rescan.
	typeIndex struct {
		text   string
		levels []level         // levels[i] is the depth before text[i]
		bars   map[level][]int // offsets of " | " bars outside quotes, by depth
		commas map[level][]int // offsets of ',' outside quotes, by depth
		closes map[int]int     // offset of '<' to offset of its matching '>'
	}
)

func newTypeIndex(text string) *typeIndex {
	x := &typeIndex{
		text:   text,
		levels: make([]level, len(text)+1),
		bars:   make(map[level][]int),
		commas: make(map[level][]int),
		closes: make(map[int]int),
	}

	var (
		n     = nesting{angles: true}
		opens []int
	)

	for i := 0; i < len(text); i++ {
		lv := level{angle: n.angle, brace: n.brace}
		x.levels[i] = lv

		quoted := n.quote != 0
		n.step(text[i])
		if quoted {
			continue
		}

		switch text[i] {
		case '<':
			opens = append(opens, i)
		case '>':
			if len(opens) > 0 {
				x.closes[opens[len(opens)-1]] = i
				opens = opens[:len(opens)-1]
			}
		case ',':
			x.commas[lv] = append(x.commas[lv], i)
		case '|':
			if isUnionBar(text, i) {
				x.bars[lv] = append(x.bars[lv], i)
			}
		}
	}

	x.levels[len(text)] = level{angle: n.angle, brace: n.brace}
	return x
}

// trim narrows sp past leading and trailing white space.
func (x *typeIndex) trim(sp span) span {
	t := strings.TrimLeftFunc(x.text[sp.start:sp.end], unicode.IsSpace)
	sp.start = sp.end - len(t)
	sp.end = sp.start + len(strings.TrimRightFunc(t, unicode.IsSpace))
	return sp
}

// within returns the offsets in sorted that fall inside [from, to).
func within(sorted []int, from, to int) []int {
	lo := sort.SearchInts(sorted, from)
	hi := sort.SearchInts(sorted, to)
	if lo >= hi {
		return nil
	}

	return sorted[lo:hi]
}

// unionBars returns the bars of sp that sit at the depth sp starts at, leaving
// out bars on the first or last byte of sp.
func (x *typeIndex) unionBars(sp span) []int {
	if sp.end-sp.start < 3 {
		return nil
	}

	return within(x.bars[x.levels[sp.start]], sp.start+1, sp.end-1)
}

func (x *typeIndex) hasUnion(sp span) bool {
	return len(x.unionBars(sp)) > 0
}

// splitUnion splits sp like SplitUnion does.
func (x *typeIndex) splitUnion(sp span) []span {
	var (
		parts []span
		start = sp.start
	)

	for _, i := range x.unionBars(sp) {
		if i-1 < start {
			continue
		}

		if part := x.trim(span{start, i - 1}); part.end > part.start {
			parts = append(parts, part)
		}
		start = i + 2
	}

	if start < sp.end {
		if part := x.trim(span{start, sp.end}); part.end > part.start {
			parts = append(parts, part)
		}
	}

	return parts
}

// arrayElement returns the span of T when sp is "array<T>" and the '<' after
// "array" is closed by the final '>'.
func (x *typeIndex) arrayElement(sp span) (span, bool) {
	t := x.text[sp.start:sp.end]
	if !strings.HasPrefix(t, "array<") || !strings.HasSuffix(t, ">") {
		return span{}, false
	}

	open := sp.start + len("array")
	if end, ok := x.closes[open]; !ok || end != sp.end-1 {
		return span{}, false
	}

	return span{open + 1, sp.end - 1}, true
}

// fields splits the inside of an object literal into its "name: type" pairs.
// A field's type runs up to the next ',' at the depth the type starts at.
func (x *typeIndex) fields(sp span) []objectField {
	var fields []objectField

	pos := sp.start
	for pos < sp.end {
		for pos < sp.end && isSpace(x.text[pos]) {
			pos++
		}
		if pos >= sp.end {
			break
		}

		colon := strings.IndexByte(x.text[pos:sp.end], ':')
		if colon < 0 {
			break
		}

		name := strings.TrimSpace(x.text[pos : pos+colon])
		pos += colon + 1
		for pos < sp.end && isSpace(x.text[pos]) {
			pos++
		}

		end := sp.end
		if commas := within(x.commas[x.levels[pos]], pos, sp.end); len(commas) > 0 {
			end = commas[0]
		}

		fields = append(fields, objectField{name: name, typ: span{pos, end}})

		pos = end
		if pos < sp.end && x.text[pos] == ',' {
			pos++
		}
	}

	return fields
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
