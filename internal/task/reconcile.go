package task

// NestItems deduplicates a flat sequence of result roots. A filtered query
// result may contain both a task and one of its ancestors as independent
// roots; rendering both would show the task twice. Roots whose identity
// already appears as a strict descendant of any root are dropped. The
// returned set holds the identities of the retained roots for callers that
// need to distinguish "rendered as root" from "rendered as child".
//
// Children of a surviving root always render recursively; only top-level
// duplication is addressed here.
func NestItems(roots []*Node) ([]*Node, map[Key]bool) {
	seen := make(map[Key]bool)
	retained := make(map[Key]bool, len(roots))
	for _, root := range roots {
		for _, child := range root.Children {
			markDescendants(child, seen)
		}
		retained[root.Key()] = true
	}

	filtered := make([]*Node, 0, len(roots))
	for _, root := range roots {
		if seen[root.Key()] {
			delete(retained, root.Key())
			continue
		}
		filtered = append(filtered, root)
	}
	return filtered, retained
}

func markDescendants(n *Node, seen map[Key]bool) {
	seen[n.Key()] = true
	for _, child := range n.Children {
		markDescendants(child, seen)
	}
}
