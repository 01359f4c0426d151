package task

import (
	"strings"
	"testing"
)

func TestParseDocumentForest(t *testing.T) {
	doc := strings.Join([]string{
		"# Plan",
		"",
		"- [ ] parent",
		"    - [x] child one",
		"    - [ ] child two",
		"- [ ] sibling",
		"",
	}, "\n")
	roots := ParseDocument("plan.md", doc)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	parent := roots[0]
	if parent.Text != "parent" || parent.Line != 2 {
		t.Fatalf("expected parent at line 2, got %+v", parent)
	}
	if len(parent.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(parent.Children))
	}
	if !parent.Children[0].Completed() {
		t.Fatalf("expected first child completed")
	}
	if parent.Children[1].Line != 4 {
		t.Fatalf("expected second child at line 4, got %d", parent.Children[1].Line)
	}
	if roots[1].Text != "sibling" {
		t.Fatalf("expected sibling root, got %q", roots[1].Text)
	}
}

func TestParseDocumentFrontmatterKeepsOffsets(t *testing.T) {
	doc := strings.Join([]string{
		"---",
		"title: Test",
		"tags: [a]",
		"---",
		"- [ ] after frontmatter",
		"",
	}, "\n")
	roots := ParseDocument("a.md", doc)
	if len(roots) != 1 {
		t.Fatalf("expected 1 task, got %d", len(roots))
	}
	// Line must address the raw document, frontmatter included.
	if roots[0].Line != 4 {
		t.Fatalf("expected line 4, got %d", roots[0].Line)
	}
}

func TestParseDocumentSkipsCodeFences(t *testing.T) {
	doc := strings.Join([]string{
		"```",
		"- [ ] not a task",
		"```",
		"- [ ] real task",
		"",
	}, "\n")
	roots := ParseDocument("a.md", doc)
	if len(roots) != 1 || roots[0].Text != "real task" {
		t.Fatalf("expected only the task outside the fence, got %d", len(roots))
	}
}

func TestParseDocumentMultilineText(t *testing.T) {
	doc := strings.Join([]string{
		"- [ ] first line",
		"  continuation here",
		"",
		"not part of task",
		"",
	}, "\n")
	roots := ParseDocument("a.md", doc)
	if len(roots) != 1 {
		t.Fatalf("expected 1 task, got %d", len(roots))
	}
	node := roots[0]
	if node.LineCount != 2 {
		t.Fatalf("expected lineCount 2, got %d", node.LineCount)
	}
	if node.Text != "first line\ncontinuation here" {
		t.Fatalf("expected multi-line text, got %q", node.Text)
	}
}

func TestParseDocumentMarkers(t *testing.T) {
	doc := strings.Join([]string{
		"- [ ] dash",
		"* [ ] star",
		"+ [ ] plus",
		"1. [ ] numbered dot",
		"2) [ ] numbered paren",
		"",
	}, "\n")
	roots := ParseDocument("a.md", doc)
	if len(roots) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(roots))
	}
	symbols := []string{"-", "*", "+", "1.", "2)"}
	for i, want := range symbols {
		if roots[i].Symbol != want {
			t.Fatalf("task %d: expected symbol %q, got %q", i, want, roots[i].Symbol)
		}
	}
}

func TestParseDocumentIgnoresPlainListItems(t *testing.T) {
	doc := strings.Join([]string{
		"- plain item",
		"- [ ] checkbox item",
		"",
	}, "\n")
	roots := ParseDocument("a.md", doc)
	if len(roots) != 1 || roots[0].Text != "checkbox item" {
		t.Fatalf("expected only checkbox items, got %d", len(roots))
	}
}

func TestParseThenRewriteRoundTrip(t *testing.T) {
	doc := "- [ ] buy milk\n"
	roots := ParseDocument("a.md", doc)
	if len(roots) != 1 {
		t.Fatalf("expected 1 task, got %d", len(roots))
	}
	node := roots[0]
	if node.Symbol != "-" || node.Status != " " || node.Text != "buy milk" {
		t.Fatalf("unexpected node: %+v", node)
	}
}
