package value

import (
	"path"
	"strings"
)

// LinkType distinguishes what a link points at inside the vault.
type LinkType string

const (
	FileLink   LinkType = "file"
	HeaderLink LinkType = "header"
	BlockLink  LinkType = "block"
)

// Link is an immutable reference to a file, header, or block. Display and
// Embed affect rendering only and are excluded from equality. Derivations go
// through the With*/To* constructors; callers never mutate a Link in place.
type Link struct {
	Path    string
	Type    LinkType
	Subpath string
	Display string
	Embed   bool
}

// File creates a link to a whole file.
func File(filePath string, embed bool, display string) Link {
	return Link{Path: filePath, Type: FileLink, Embed: embed, Display: display}
}

// Header creates a link to a header inside a file.
func Header(filePath, header string, embed bool, display string) Link {
	return Link{Path: filePath, Type: HeaderLink, Subpath: header, Embed: embed, Display: display}
}

// Block creates a link to a block inside a file.
func Block(filePath, blockID string, embed bool, display string) Link {
	return Link{Path: filePath, Type: BlockLink, Subpath: blockID, Embed: embed, Display: display}
}

// Equal compares identity only: path, type, and subpath.
func (l Link) Equal(other Link) bool {
	return l.Path == other.Path && l.Type == other.Type && l.Subpath == other.Subpath
}

func (l Link) WithPath(p string) Link {
	l.Path = p
	return l
}

func (l Link) WithDisplay(display string) Link {
	l.Display = display
	return l
}

func (l Link) WithHeader(header string) Link {
	l.Type = HeaderLink
	l.Subpath = header
	return l
}

// ToFile strips any header or block subpath, keeping display and embed.
func (l Link) ToFile() Link {
	l.Type = FileLink
	l.Subpath = ""
	return l
}

// ToEmbed is idempotent: an already-embedded link is returned unchanged.
func (l Link) ToEmbed() Link {
	if l.Embed {
		return l
	}
	l.Embed = true
	return l
}

func (l Link) FromEmbed() Link {
	if !l.Embed {
		return l
	}
	l.Embed = false
	return l
}

// FileName is the final path component with its extension stripped; it is
// the default display text for file links.
func (l Link) FileName() string {
	base := path.Base(l.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Markdown renders the link in wiki-link form:
// (!)[[path#subpath|display]]. File links carry no subpath marker; headers
// use "#", blocks "#^". When no explicit display is set, the file title is
// used, with " > subpath" appended for header and block links.
func (l Link) Markdown() string {
	var b strings.Builder
	if l.Embed {
		b.WriteByte('!')
	}
	b.WriteString("[[")
	b.WriteString(l.Path)
	switch l.Type {
	case HeaderLink:
		b.WriteString("#")
		b.WriteString(l.Subpath)
	case BlockLink:
		b.WriteString("#^")
		b.WriteString(l.Subpath)
	}
	b.WriteString("|")
	if l.Display != "" {
		b.WriteString(l.Display)
	} else {
		b.WriteString(l.FileName())
		if l.Type != FileLink {
			b.WriteString(" > ")
			b.WriteString(l.Subpath)
		}
	}
	b.WriteString("]]")
	return b.String()
}
