package task

import "strings"

// ParseDocument scans a markdown document for checkbox tasks and builds the
// nested forest the reconciler and rewriter operate on. Line numbers are
// 0-based offsets into the raw document, frontmatter included, so a node can
// address its source line directly. Code fences and the frontmatter block
// are skipped; indentation (tab = 4 columns) decides nesting.
func ParseDocument(path, doc string) []*Node {
	lines := splitLines(doc)
	start := frontmatterEnd(lines)

	type openItem struct {
		indent int
		node   *Node
	}
	var roots []*Node
	var stack []openItem
	inFence := false

	for i := start; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		match := listItemRe.FindStringSubmatch(line)
		if match == nil || match[3] == "" || match[5] == "" {
			continue
		}

		indent := indentColumns(match[1])
		node := &Node{
			Path:      path,
			Line:      i,
			LineCount: 1,
			Text:      match[5],
			Symbol:    match[2],
			Status:    normalizeStatus(match[4]),
		}

		// Continuation lines belong to this task's text: anything indented
		// at least two columns past the marker that is not itself a list
		// item. Blank lines are kept when deeper content follows.
		base := indent + 2
		textLines := []string{match[5]}
		for j := i + 1; j < len(lines); j++ {
			next := lines[j]
			if isListMarkerLine(next) {
				break
			}
			if strings.TrimSpace(next) == "" {
				if j+1 < len(lines) && indentColumns(leadingWhitespace(lines[j+1])) >= base {
					textLines = append(textLines, "")
					node.LineCount++
					continue
				}
				break
			}
			if indentColumns(leadingWhitespace(next)) < base {
				break
			}
			textLines = append(textLines, strings.TrimSpace(next))
			node.LineCount++
		}
		node.Text = strings.Join(textLines, "\n")

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
		stack = append(stack, openItem{indent: indent, node: node})
	}
	return roots
}

func normalizeStatus(status string) string {
	if status == "" {
		return " "
	}
	return status
}

func frontmatterEnd(lines []string) int {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i + 1
		}
	}
	return 0
}

func isListMarkerLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) >= 2 {
		switch trimmed[0] {
		case '-', '*', '+':
			if trimmed[1] == ' ' || trimmed[1] == '\t' {
				return true
			}
		}
	}
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i == 0 || i+1 >= len(trimmed) {
		return false
	}
	if trimmed[i] != '.' && trimmed[i] != ')' {
		return false
	}
	if trimmed[i+1] != ' ' && trimmed[i+1] != '\t' {
		return false
	}
	return true
}

func leadingWhitespace(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}

func indentColumns(ws string) int {
	columns := 0
	for _, r := range ws {
		switch r {
		case ' ':
			columns++
		case '\t':
			columns += 4
		}
	}
	return columns
}
