package value

import (
	"testing"
	"time"

	"github.com/yuin/goldmark/ast"
)

func TestWrapClassification(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want Tag
	}{
		{"nil", nil, TagNull},
		{"int", 42, TagNumber},
		{"float", 4.2, TagNumber},
		{"uint", uint16(7), TagNumber},
		{"string", "hello", TagString},
		{"bool", true, TagBoolean},
		{"duration", 90 * time.Second, TagDuration},
		{"date", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), TagDate},
		{"html", ast.NewParagraph(), TagHTML},
		{"array", []any{1, "two"}, TagArray},
		{"link", File("a.md", false, ""), TagLink},
		{"object", map[string]any{"a": 1}, TagObject},
	}
	for _, tc := range cases {
		v, ok := Wrap(tc.in)
		if !ok {
			t.Fatalf("%s: expected classification, got unclassifiable", tc.name)
		}
		if TypeOf(v) != tc.want {
			t.Fatalf("%s: expected tag %q, got %q", tc.name, tc.want, TypeOf(v))
		}
	}
}

func TestWrapDurationBeforeNumber(t *testing.T) {
	// A duration is an integer underneath; the predicate order must still
	// classify it as a duration, never a number.
	v, ok := Wrap(5 * time.Minute)
	if !ok || TypeOf(v) != TagDuration {
		t.Fatalf("expected duration tag, got %q", TypeOf(v))
	}
}

func TestWrapArrayNeverObject(t *testing.T) {
	v, ok := Wrap([]any{map[string]any{"a": 1}})
	if !ok || TypeOf(v) != TagArray {
		t.Fatalf("expected array tag, got %q", TypeOf(v))
	}
	items, _ := v.Array()
	if len(items) != 1 || TypeOf(items[0]) != TagObject {
		t.Fatalf("expected nested object element, got %v", items)
	}
}

func TestWrapFunction(t *testing.T) {
	fn := Func(func(args []Value) (Value, error) { return Null, nil })
	v, ok := Wrap(fn)
	if !ok || TypeOf(v) != TagFunction {
		t.Fatalf("expected function tag, got %q", TypeOf(v))
	}
}

func TestWrapUnclassifiable(t *testing.T) {
	if _, ok := Wrap(make(chan int)); ok {
		t.Fatalf("expected channel to be unclassifiable")
	}
	if _, ok := Wrap(struct{ A int }{1}); ok {
		t.Fatalf("expected struct to be unclassifiable")
	}
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	if TypeOf(v) != TagNull {
		t.Fatalf("expected zero Value to be null, got %q", TypeOf(v))
	}
}

func TestIsTruthy(t *testing.T) {
	truthy := []Value{
		Number(1),
		Number(-2),
		String("x"),
		Bool(true),
		LinkValue(File("a.md", false, "")),
		Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Dur(time.Second),
		Array(Number(0)),
		Object(map[string]Value{"a": Null}),
		HTML(ast.NewParagraph()),
		Function(func(args []Value) (Value, error) { return Null, nil }),
	}
	for i, v := range truthy {
		if !IsTruthy(v) {
			t.Fatalf("case %d (%s): expected truthy", i, TypeOf(v))
		}
	}
	falsy := []Value{
		Null,
		Number(0),
		String(""),
		Bool(false),
		LinkValue(Link{Type: FileLink}),
		Date(time.Time{}),
		Dur(500 * time.Millisecond),
		Array(),
		Object(map[string]Value{}),
	}
	for i, v := range falsy {
		if IsTruthy(v) {
			t.Fatalf("case %d (%s): expected falsy", i, TypeOf(v))
		}
	}
}

func TestDeepCopyIsolation(t *testing.T) {
	inner := map[string]Value{"n": Number(1)}
	original := Array(Object(inner), String("keep"))
	copied := DeepCopy(original)
	if !Equal(original, copied) {
		t.Fatalf("expected copy to compare equal to original")
	}

	copiedItems, _ := copied.Array()
	obj, _ := copiedItems[0].Object()
	obj["n"] = Number(99)

	origItems, _ := original.Array()
	origObj, _ := origItems[0].Object()
	if n, _ := origObj["n"].Number(); n != 1 {
		t.Fatalf("mutating the copy changed the original: got %v", n)
	}
}
