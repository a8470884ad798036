package parser

import (
	"strings"

	"github.com/rymskip/evenframe-sub000/pkg/consts"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
)

type (
	taskKind int

	// task is one unit of pending work for typeParser.
	task struct {
		kind  taskKind
		span  span     // taskParse
		count int      // taskBuildUnion
		keys  []string // taskBuildObject
	}

	// typeParser turns type text into an ObjectType with an explicit work
	// stack and value stack, so nesting depth never grows the Go call stack.
	typeParser struct {
		index  *typeIndex
		work   []task
		values []schema.ObjectType
	}

	// objectField is a "name: type" pair found inside an object literal.
	objectField struct {
		name string
		typ  span
	}
)

const (
	taskParse taskKind = iota
	taskWrapArray
	taskBuildUnion
	taskBuildObject
)

// ParseType parses a SurrealQL type expression into its structural form.
//
// The rules are tried in order:
//
//   - "{ a: T, b: U }" not split by a top-level " | " becomes an Object.
//   - "array<T>" whose '<' is closed by the final '>' becomes an Array.
//   - Text with a top-level " | " becomes a Union of the trimmed, non-empty
//     parts. A two member union containing null becomes Nullable.
//   - Anything else is kept verbatim as Simple.
//
// Inputs longer than consts.MaxTypeExpressionSize are returned as Simple
// without structural parsing. ParseType never fails.
//
// Example:
//
//	ParseType("array<{ city: string, zip: null | string }>")
//	// Array{Elem: Object{"city": Simple("string"), "zip": Nullable{Inner: Simple("string")}}}
func ParseType(text string) schema.ObjectType {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > consts.MaxTypeExpressionSize {
		return schema.Simple(trimmed)
	}

	p := &typeParser{
		index: newTypeIndex(trimmed),
		work:  []task{{kind: taskParse, span: span{0, len(trimmed)}}},
	}
	return p.run()
}

// ParseObjectFields parses the inside of an object literal (without the
// surrounding braces). Duplicate field names keep the last definition.
func ParseObjectFields(fields string) schema.Object {
	obj := make(schema.Object)
	index := newTypeIndex(fields)
	for _, f := range index.fields(span{0, len(fields)}) {
		obj[f.name] = ParseType(index.text[f.typ.start:f.typ.end])
	}

	return obj
}

// SplitUnion splits text on every " | " that is outside braces, angle
// brackets and quotes. Parts are trimmed and empty parts dropped.
//
// Example:
//
//	SplitUnion("record<a | b> | { x: int | string } | null")
//	// ["record<a | b>", "{ x: int | string }", "null"]
func SplitUnion(text string) []string {
	var (
		parts []string
		start int
		n     = nesting{angles: true}
	)

	for i := 0; i < len(text); i++ {
		if !n.step(text[i]) || !isUnionBar(text, i) || i-1 < start {
			continue
		}

		if part := strings.TrimSpace(text[start : i-1]); part != "" {
			parts = append(parts, part)
		}
		start = i + 2
		i++
	}

	if start < len(text) {
		if part := strings.TrimSpace(text[start:]); part != "" {
			parts = append(parts, part)
		}
	}

	return parts
}

func (p *typeParser) run() schema.ObjectType {
	for len(p.work) > 0 {
		t := p.work[len(p.work)-1]
		p.work = p.work[:len(p.work)-1]

		switch t.kind {
		case taskParse:
			p.parse(t.span)
		case taskWrapArray:
			p.wrapArray()
		case taskBuildUnion:
			p.buildUnion(t.count)
		case taskBuildObject:
			p.buildObject(t.keys)
		}
	}

	if len(p.values) == 0 {
		return schema.Simple("unknown")
	}

	return p.values[len(p.values)-1]
}

func (p *typeParser) push(tasks ...task) {
	p.work = append(p.work, tasks...)
}

func (p *typeParser) parse(sp span) {
	x := p.index
	sp = x.trim(sp)
	t := x.text[sp.start:sp.end]

	if strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}") && !x.hasUnion(sp) {
		fields := x.fields(span{sp.start + 1, sp.end - 1})
		if len(fields) == 0 {
			p.values = append(p.values, schema.Object{})
			return
		}

		keys := make([]string, len(fields))
		for i, f := range fields {
			keys[i] = f.name
		}

		p.push(task{kind: taskBuildObject, keys: keys})
		for i := len(fields) - 1; i >= 0; i-- {
			p.push(task{kind: taskParse, span: fields[i].typ})
		}
		return
	}

	if inner, ok := x.arrayElement(sp); ok {
		p.push(task{kind: taskWrapArray}, task{kind: taskParse, span: inner})
		return
	}

	if parts := x.splitUnion(sp); len(parts) > 1 {
		p.push(task{kind: taskBuildUnion, count: len(parts)})
		for i := len(parts) - 1; i >= 0; i-- {
			p.push(task{kind: taskParse, span: parts[i]})
		}
		return
	}

	p.values = append(p.values, schema.Simple(t))
}

func (p *typeParser) pop(count int) []schema.ObjectType {
	count = min(count, len(p.values))
	items := make([]schema.ObjectType, count)
	copy(items, p.values[len(p.values)-count:])
	p.values = p.values[:len(p.values)-count]
	return items
}

func (p *typeParser) wrapArray() {
	if len(p.values) == 0 {
		p.values = append(p.values, schema.Simple("array<unknown>"))
		return
	}

	last := len(p.values) - 1
	p.values[last] = schema.Array{Elem: p.values[last]}
}

func (p *typeParser) buildUnion(count int) {
	items := p.pop(count)

	if len(items) == 2 && (items[0].Equal(schema.Null) || items[1].Equal(schema.Null)) {
		switch {
		case !items[0].Equal(schema.Null):
			p.values = append(p.values, schema.Nullable{Inner: items[0]})
		case !items[1].Equal(schema.Null):
			p.values = append(p.values, schema.Nullable{Inner: items[1]})
		default:
			// null | null stays a plain union.
			p.values = append(p.values, schema.Union{schema.Null, schema.Null})
		}
		return
	}

	p.values = append(p.values, schema.Union(items))
}

func (p *typeParser) buildObject(keys []string) {
	items := p.pop(len(keys))
	obj := make(schema.Object, len(keys))
	for i, v := range items {
		obj[keys[i]] = v
	}

	p.values = append(p.values, obj)
}
