// Package task models checklist items extracted from markdown documents and
// implements the two operations layered on top of them: deduplicating
// hierarchically-returned results into a minimal forest, and patching a
// task's source document in place without disturbing surrounding content.
package task

// Key identifies a task within one index snapshot: the owning document path
// and the 0-based line the item starts on.
type Key struct {
	Path string
	Line int
}

// Node is one list item, optionally a checkbox task, with nested children.
// Trees are produced and owned by the external index; this package only
// borrows them. Rewrites target the document store, never the tree, so a
// rewritten Node is stale until the index re-scans its document.
type Node struct {
	Path      string
	Line      int
	LineCount int
	Text      string
	Symbol    string
	Status    string
	Children  []*Node
}

// Completed reports whether the status char marks the task done. Any
// non-space status counts: "X" and custom status characters alike.
func (n *Node) Completed() bool {
	return n.Status != " "
}

func (n *Node) Key() Key {
	return Key{Path: n.Path, Line: n.Line}
}
