package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

var ErrUnsafePath = errors.New("unsafe path")

// Dir is a filesystem-backed store rooted at a vault directory. Writes are
// atomic (tmp file + rename + dir sync) and serialized per path.
type Dir struct {
	root  string
	locks *locker
}

func NewDir(root string) *Dir {
	return &Dir{root: root, locks: newLocker()}
}

func (d *Dir) ReadDocument(ctx context.Context, docPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := d.resolve(docPath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (d *Dir) WriteDocument(ctx context.Context, docPath, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := d.resolve(docPath)
	if err != nil {
		return err
	}
	unlock := d.locks.lock(docPath)
	defer unlock()
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return writeFileAtomic(full, []byte(text), 0o644)
}

// ListDocuments walks the vault for markdown files, skipping dot directories.
func (d *Dir) ListDocuments(ctx context.Context) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(d.root, func(p string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() && strings.HasPrefix(entry.Name(), ".") && p != d.root {
			return filepath.SkipDir
		}
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".md") {
			rel, relErr := filepath.Rel(d.root, p)
			if relErr != nil {
				return relErr
			}
			docs = append(docs, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (d *Dir) resolve(docPath string) (string, error) {
	clean, err := normalizePath(docPath)
	if err != nil {
		return "", err
	}
	full := filepath.Join(d.root, filepath.FromSlash(clean))
	rel, err := filepath.Rel(d.root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", ErrUnsafePath
	}
	return full, nil
}

func normalizePath(p string) (string, error) {
	if strings.ContainsRune(p, 0) {
		return "", ErrUnsafePath
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "/") {
		return "", ErrUnsafePath
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "..") {
		return "", ErrUnsafePath
	}
	return clean, nil
}

func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp.%s.%d", base, os.Getpid()))

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}

	if dirf, err := os.Open(dir); err == nil {
		_ = dirf.Sync()
		_ = dirf.Close()
	}
	return nil
}

type locker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLocker() *locker {
	return &locker{locks: make(map[string]*sync.Mutex)}
}

func (l *locker) lock(path string) func() {
	l.mu.Lock()
	m, ok := l.locks[path]
	if !ok {
		m = &sync.Mutex{}
		l.locks[path] = m
	}
	l.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
	}
}
