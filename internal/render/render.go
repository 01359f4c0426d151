// Package render composes query results into markdown for the host surface.
// A grouping renders as one heading per group key with its rows nested
// beneath; an ungrouped leaf sequence is reconciled first and then emitted
// as a nested checklist.
package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/trashhalo/obsidian-dataview/internal/task"
	"github.com/trashhalo/obsidian-dataview/internal/value"
)

var mdRenderer = goldmark.New()

// TaskForest renders reconciled roots and their children as a markdown
// checklist. Children of a surviving root always render, regardless of
// reconciliation.
func TaskForest(roots []*task.Node) string {
	filtered, _ := task.NestItems(roots)
	var b strings.Builder
	for _, node := range filtered {
		writeTask(&b, node, 0)
	}
	return b.String()
}

func writeTask(b *strings.Builder, node *task.Node, depth int) {
	indent := strings.Repeat("    ", depth)
	lines := strings.Split(node.Text, "\n")
	b.WriteString(indent)
	b.WriteString(node.Symbol)
	b.WriteString(" [")
	b.WriteString(node.Status)
	b.WriteString("] ")
	b.WriteString(lines[0])
	b.WriteString("\n")
	for _, l := range lines[1:] {
		b.WriteString(indent)
		b.WriteString("  ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	for _, child := range node.Children {
		writeTask(b, child, depth+1)
	}
}

// TaskGrouping renders a possibly nested grouping of tasks: a heading per
// group key, recursing into rows, with leaf sequences rendered as checklists.
func TaskGrouping(g value.Grouping[*task.Node], depth int) string {
	if !g.IsGrouped() {
		return TaskForest(g.Rows())
	}
	level := depth + 2
	if level > 6 {
		level = 6
	}
	var b strings.Builder
	for _, group := range g.Groups() {
		b.WriteString(strings.Repeat("#", level))
		b.WriteString(" ")
		b.WriteString(group.Key.Display())
		b.WriteString("\n\n")
		b.WriteString(TaskGrouping(group.Rows, depth+1))
		b.WriteString("\n")
	}
	return b.String()
}

// HTML converts rendered markdown into HTML.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
