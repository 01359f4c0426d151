// Package value implements the dynamic literal type system shared by query
// evaluation, sorting, grouping, and rendering. Every literal carries exactly
// one tag; classification of raw Go values follows a fixed predicate order so
// that ambiguous shapes always resolve the same way.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark/ast"
)

// Tag names the active variant of a Value. Tag names participate directly in
// cross-tag ordering, so they are stable identifiers, not display strings.
type Tag string

const (
	TagNull     Tag = "null"
	TagBoolean  Tag = "boolean"
	TagNumber   Tag = "number"
	TagString   Tag = "string"
	TagDate     Tag = "date"
	TagDuration Tag = "duration"
	TagLink     Tag = "link"
	TagArray    Tag = "array"
	TagObject   Tag = "object"
	TagHTML     Tag = "html"
	TagFunction Tag = "function"
)

// Func is the opaque callable literal. Its contents never participate in
// ordering or equality.
type Func func(args []Value) (Value, error)

// Value is a closed tagged union over the literal types. The zero Value is
// null.
type Value struct {
	tag Tag
	raw any
}

// Null is the null literal.
var Null = Value{tag: TagNull}

func Number(n float64) Value { return Value{tag: TagNumber, raw: n} }

func String(s string) Value { return Value{tag: TagString, raw: s} }

func Bool(b bool) Value { return Value{tag: TagBoolean, raw: b} }

func Date(t time.Time) Value { return Value{tag: TagDate, raw: t} }

func Dur(d time.Duration) Value { return Value{tag: TagDuration, raw: d} }

func LinkValue(l Link) Value { return Value{tag: TagLink, raw: l} }

func Array(vs ...Value) Value { return Value{tag: TagArray, raw: vs} }

func Object(m map[string]Value) Value { return Value{tag: TagObject, raw: m} }

func HTML(n ast.Node) Value { return Value{tag: TagHTML, raw: n} }

func Function(f Func) Value { return Value{tag: TagFunction, raw: f} }

// Wrap classifies a raw Go value into a literal. The predicate order is a
// contract: null, number, string, boolean, duration, date, html, array, link,
// function, then object as the strict catch-all. Reordering these checks
// silently reclassifies values, so the switch below must stay in this order.
// The second return is false for values outside the literal universe.
func Wrap(v any) (Value, bool) {
	if v == nil {
		return Null, true
	}
	switch x := v.(type) {
	case Value:
		return x, true
	case int:
		return Number(float64(x)), true
	case int8:
		return Number(float64(x)), true
	case int16:
		return Number(float64(x)), true
	case int32:
		return Number(float64(x)), true
	case int64:
		return Number(float64(x)), true
	case uint:
		return Number(float64(x)), true
	case uint8:
		return Number(float64(x)), true
	case uint16:
		return Number(float64(x)), true
	case uint32:
		return Number(float64(x)), true
	case uint64:
		return Number(float64(x)), true
	case float32:
		return Number(float64(x)), true
	case float64:
		return Number(x), true
	case string:
		return String(x), true
	case bool:
		return Bool(x), true
	case time.Duration:
		return Dur(x), true
	case time.Time:
		return Date(x), true
	case ast.Node:
		return HTML(x), true
	case []Value:
		return Array(x...), true
	case []any:
		out := make([]Value, 0, len(x))
		for _, item := range x {
			wrapped, ok := Wrap(item)
			if !ok {
				return Null, false
			}
			out = append(out, wrapped)
		}
		return Array(out...), true
	case Link:
		return LinkValue(x), true
	case *Link:
		if x == nil {
			return Null, true
		}
		return LinkValue(*x), true
	case Func:
		return Function(x), true
	case func(args []Value) (Value, error):
		return Function(x), true
	case map[string]Value:
		return Object(x), true
	case map[string]any:
		out := make(map[string]Value, len(x))
		for k, item := range x {
			wrapped, ok := Wrap(item)
			if !ok {
				return Null, false
			}
			out[k] = wrapped
		}
		return Object(out), true
	}
	return Null, false
}

// TypeOf reports the active tag. A zero Value reports null.
func TypeOf(v Value) Tag {
	if v.tag == "" {
		return TagNull
	}
	return v.tag
}

func (v Value) Tag() Tag     { return TypeOf(v) }
func (v Value) IsNull() bool { return TypeOf(v) == TagNull }

func (v Value) Number() (float64, bool) {
	n, ok := v.raw.(float64)
	return n, ok && v.tag == TagNumber
}

func (v Value) Text() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok && v.tag == TagString
}

func (v Value) Bool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok && v.tag == TagBoolean
}

func (v Value) Date() (time.Time, bool) {
	t, ok := v.raw.(time.Time)
	return t, ok && v.tag == TagDate
}

func (v Value) Duration() (time.Duration, bool) {
	d, ok := v.raw.(time.Duration)
	return d, ok && v.tag == TagDuration
}

func (v Value) Link() (Link, bool) {
	l, ok := v.raw.(Link)
	return l, ok && v.tag == TagLink
}

func (v Value) Array() ([]Value, bool) {
	vs, ok := v.raw.([]Value)
	return vs, ok && v.tag == TagArray
}

func (v Value) Object() (map[string]Value, bool) {
	m, ok := v.raw.(map[string]Value)
	return m, ok && v.tag == TagObject
}

func (v Value) HTML() (ast.Node, bool) {
	n, ok := v.raw.(ast.Node)
	return n, ok && v.tag == TagHTML
}

func (v Value) Function() (Func, bool) {
	f, ok := v.raw.(Func)
	return f, ok && v.tag == TagFunction
}

// IsTruthy reports whether a literal counts as true in a filter position.
func IsTruthy(v Value) bool {
	switch TypeOf(v) {
	case TagNull:
		return false
	case TagNumber:
		n, _ := v.Number()
		return n != 0
	case TagString:
		s, _ := v.Text()
		return s != ""
	case TagBoolean:
		b, _ := v.Bool()
		return b
	case TagLink:
		l, _ := v.Link()
		return l.Path != ""
	case TagDate:
		t, _ := v.Date()
		return !t.IsZero()
	case TagDuration:
		d, _ := v.Duration()
		return d/time.Second != 0
	case TagArray:
		vs, _ := v.Array()
		return len(vs) > 0
	case TagObject:
		m, _ := v.Object()
		return len(m) > 0
	default:
		// html and function are always truthy
		return true
	}
}

// DeepCopy clones arrays and objects recursively. Every other tag is shared
// by reference under the immutability assumption.
func DeepCopy(v Value) Value {
	switch TypeOf(v) {
	case TagArray:
		vs, _ := v.Array()
		out := make([]Value, len(vs))
		for i, item := range vs {
			out[i] = DeepCopy(item)
		}
		return Array(out...)
	case TagObject:
		m, _ := v.Object()
		out := make(map[string]Value, len(m))
		for k, item := range m {
			out[k] = DeepCopy(item)
		}
		return Object(out)
	default:
		return v
	}
}

// Display renders a literal for headings and plain-text output. Nulls render
// as a dash; composite values render their elements recursively.
func (v Value) Display() string {
	switch TypeOf(v) {
	case TagNull:
		return "-"
	case TagNumber:
		n, _ := v.Number()
		return strconv.FormatFloat(n, 'f', -1, 64)
	case TagString:
		s, _ := v.Text()
		return s
	case TagBoolean:
		b, _ := v.Bool()
		return strconv.FormatBool(b)
	case TagDate:
		t, _ := v.Date()
		return t.Format("2006-01-02")
	case TagDuration:
		d, _ := v.Duration()
		return d.String()
	case TagLink:
		l, _ := v.Link()
		return l.Markdown()
	case TagArray:
		vs, _ := v.Array()
		parts := make([]string, 0, len(vs))
		for _, item := range vs {
			parts = append(parts, item.Display())
		}
		return strings.Join(parts, ", ")
	case TagObject:
		m, _ := v.Object()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, m[k].Display()))
		}
		return strings.Join(parts, ", ")
	case TagHTML:
		return "<html>"
	case TagFunction:
		return "<function>"
	}
	return ""
}

func (v Value) String() string { return v.Display() }
