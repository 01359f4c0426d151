package task

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/trashhalo/obsidian-dataview/internal/store"
)

// listItemRe is the list-item line grammar: leading whitespace (blockquote
// markers included), a marker (-, *, + or a numbered token), an optional
// [status] checkbox, then the body.
var listItemRe = regexp.MustCompile(`^([\s>]*)(\d+\.|\d+\)|[-+*])\s*(\[(.?)\])?\s*(.*)$`)

// Rewrite patches node's source document so its checkbox carries status,
// leaving every other byte of the document alone. It returns true when a
// write happened. Staleness conditions — the document shrank, the addressed
// line no longer parses as a list item, or its text no longer matches the
// cached node — make Rewrite do nothing and return (false, nil): if the
// world changed underneath us, do nothing rather than corrupt the file.
// Store I/O failures propagate.
func Rewrite(ctx context.Context, docs store.Store, node *Node, status string) (bool, error) {
	return rewrite(ctx, docs, node, status, "", false)
}

// RewriteText is Rewrite with the task body replaced as well. The
// replacement may span multiple lines; it splices over exactly the
// LineCount lines the task occupied, reindenting continuation lines one tab
// past the marker's indentation.
func RewriteText(ctx context.Context, docs store.Store, node *Node, status, text string) (bool, error) {
	return rewrite(ctx, docs, node, status, text, true)
}

func rewrite(ctx context.Context, docs store.Store, node *Node, status, text string, replaceText bool) (bool, error) {
	if status == "" {
		status = " "
	}
	if status == node.Status && (!replaceText || text == node.Text) {
		return false, nil
	}

	doc, err := docs.ReadDocument(ctx, node.Path)
	if err != nil {
		return false, err
	}
	useCRLF := strings.Contains(doc, "\r")
	lines := splitLines(doc)

	// The cached line offset may be stale: the document can have shrunk
	// since indexing.
	if node.Line >= len(lines) {
		slog.Debug("task rewrite skipped", "path", node.Path, "line", node.Line, "reason", "line out of range")
		return false, nil
	}

	match := listItemRe.FindStringSubmatch(lines[node.Line])
	if match == nil || match[5] == "" {
		slog.Debug("task rewrite skipped", "path", node.Path, "line", node.Line, "reason", "not a list item")
		return false, nil
	}

	// Authoritative staleness guard: the live line must still carry the
	// text the node was indexed with.
	cachedFirst := strings.TrimSpace(strings.SplitN(node.Text, "\n", 2)[0])
	if strings.TrimSpace(match[5]) != cachedFirst {
		slog.Debug("task rewrite skipped", "path", node.Path, "line", node.Line, "reason", "stale text")
		return false, nil
	}

	indent := match[1]
	if replaceText {
		newLines := strings.Split(text, "\n")
		block := make([]string, 0, len(newLines))
		for i, l := range newLines {
			if i == 0 {
				block = append(block, indent+node.Symbol+" ["+status+"] "+l)
				continue
			}
			block = append(block, indent+"\t"+l)
		}
		end := node.Line + node.LineCount
		if end > len(lines) {
			end = len(lines)
		}
		spliced := make([]string, 0, len(lines)-(end-node.Line)+len(block))
		spliced = append(spliced, lines[:node.Line]...)
		spliced = append(spliced, block...)
		spliced = append(spliced, lines[end:]...)
		lines = spliced
	} else {
		lines[node.Line] = indent + node.Symbol + " [" + status + "] " + strings.TrimSpace(match[5])
	}

	ending := "\n"
	if useCRLF {
		ending = "\r\n"
	}
	if err := docs.WriteDocument(ctx, node.Path, strings.Join(lines, ending)); err != nil {
		return false, err
	}
	return true, nil
}

func splitLines(doc string) []string {
	lines := strings.Split(doc, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
