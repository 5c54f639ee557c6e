package pom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	errs "github.com/wexinc/lazymvn/internal/errors"
)

// FileName is the conventional name of a Maven project descriptor.
const FileName = "pom.xml"

// ErrMissingSection is returned when the root element has no direct
// <dependencies> child.
var ErrMissingSection = errors.New("pom has no dependencies section")

// Document is a loaded pom.xml. It holds the raw bytes and the location of
// every dependency element so edits can be spliced without re-serializing.
type Document struct {
	path      string
	content   []byte
	persisted []byte
	perm      os.FileMode

	match  MatchMode
	backup bool

	section  section
	elements []element
}

// Option configures a Document at load time.
type Option func(*Document)

// WithMatchMode sets how Reconcile identifies dependencies.
func WithMatchMode(m MatchMode) Option {
	return func(d *Document) {
		if m.IsValid() {
			d.match = m
		}
	}
}

// WithBackup makes Persist keep the previous file content at <path>.old.
func WithBackup(enabled bool) Option {
	return func(d *Document) {
		d.backup = enabled
	}
}

// Load reads and indexes the pom at path.
func Load(path string, opts ...Option) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errs.DocumentUnreadable(path, err)
	}
	if info.IsDir() {
		return nil, errs.DocumentUnreadable(path, fmt.Errorf("%s is a directory", path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.DocumentUnreadable(path, err)
	}

	doc, err := Parse(path, data, opts...)
	if err != nil {
		return nil, err
	}
	doc.perm = info.Mode().Perm()
	return doc, nil
}

// Parse indexes data as the content of the pom at path without touching the
// filesystem.
func Parse(path string, data []byte, opts ...Option) (*Document, error) {
	doc := &Document{
		path:  path,
		perm:  0o644,
		match: MatchCoordinates,
	}
	for _, opt := range opts {
		opt(doc)
	}

	sec, elems, err := scan(data)
	if err != nil {
		return nil, errs.DocumentMalformed(path, err)
	}
	doc.content = bytes.Clone(data)
	doc.persisted = bytes.Clone(data)
	doc.section = sec
	doc.elements = elems
	return doc, nil
}

// Find looks for pom.xml in dir and then in each parent directory.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errs.DocumentUnreadable(dir, err)
	}
	for current := abs; ; {
		candidate := filepath.Join(current, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", errs.PomNotFound(abs)
		}
		current = parent
	}
}

// Path returns the canonical file path of the document.
func (d *Document) Path() string {
	return d.path
}

// Bytes returns a copy of the current in-memory content.
func (d *Document) Bytes() []byte {
	return bytes.Clone(d.content)
}

// MatchMode returns the identity rule used by Reconcile.
func (d *Document) MatchMode() MatchMode {
	return d.match
}

// Dirty returns true if the in-memory content differs from what was last
// read from or written to disk.
func (d *Document) Dirty() bool {
	return !bytes.Equal(d.content, d.persisted)
}

// Dependencies returns the entries of the root's <dependencies> section in
// document order.
func (d *Document) Dependencies() ([]Dependency, error) {
	if !d.section.found {
		return nil, ErrMissingSection
	}
	deps := make([]Dependency, 0, len(d.elements))
	for _, el := range d.elements {
		deps = append(deps, el.dep)
	}
	return deps, nil
}

// Reconcile edits the document so its dependency elements match list.
//
// Each element is paired with at most one list entry: an identical entry
// first, then one with the same coordinates and classifier, then one with the
// same coordinates. Paired elements whose version differs get it rewritten.
// Unpaired elements are removed, except that MatchGroup keeps every element
// whose groupId appears in list. Unpaired list entries are appended at the end
// of the section. A list equal to the current content leaves the bytes
// untouched.
func (d *Document) Reconcile(list []Dependency) error {
	if !d.section.found {
		return errs.MissingDependencies(d.path)
	}

	wanted := make(map[Key]bool, len(list))
	for _, dep := range list {
		wanted[d.match.Identity(dep)] = true
	}

	l := d.layout()
	var edits []edit
	claimed := make([]bool, len(list))
	for i, j := range pair(d.elements, list) {
		el := d.elements[i]
		switch {
		case j >= 0:
			claimed[j] = true
			target := list[j]
			if el.selfClosing || target.Version == "" || target.Version == el.dep.Version {
				continue
			}
			edits = append(edits, d.versionEdit(el, target.Version, l))
		case d.match == MatchGroup && wanted[d.match.Identity(el.dep)]:
			// retained with its group
		default:
			edits = append(edits, d.removal(el))
		}
	}

	var additions []Dependency
	for j, dep := range list {
		if !claimed[j] {
			additions = append(additions, dep)
		}
	}
	if len(additions) > 0 {
		edits = append(edits, d.insertion(additions, l))
	}
	if len(edits) == 0 {
		return nil
	}

	content := apply(d.content, edits)
	sec, elems, err := scan(content)
	if err != nil {
		return fmt.Errorf("reconcile produced malformed document: %w", err)
	}
	d.content = content
	d.section = sec
	d.elements = elems
	return nil
}

// pair returns, for each element, the index of its list entry or -1. Each
// pass walks the elements in document order and claims the first free entry
// it accepts.
func pair(elems []element, list []Dependency) []int {
	passes := []func(a, b Dependency) bool{
		func(a, b Dependency) bool { return a == b },
		func(a, b Dependency) bool { return a.Key() == b.Key() && a.Classifier == b.Classifier },
		func(a, b Dependency) bool { return a.Key() == b.Key() },
	}

	match := make([]int, len(elems))
	for i := range match {
		match[i] = -1
	}
	taken := make([]bool, len(list))
	for _, same := range passes {
		for i, el := range elems {
			if match[i] >= 0 {
				continue
			}
			for j, dep := range list {
				if !taken[j] && same(el.dep, dep) {
					match[i], taken[j] = j, true
					break
				}
			}
		}
	}
	return match
}

// rename is swapped in tests to simulate a crash before the commit point.
var rename = os.Rename

// Persist writes the document to its path. The new content goes to a temp
// file in the same directory which is renamed over the original, so a
// failure at any point leaves either the old or the new file in place.
// With backup enabled the previous content is written to <path>.old once
// the rename has succeeded.
func (d *Document) Persist() error {
	if err := writeAtomic(d.path, d.content, d.perm); err != nil {
		return errs.PersistFailed(d.path, err)
	}
	previous := d.persisted
	d.persisted = bytes.Clone(d.content)

	if d.backup && !bytes.Equal(previous, d.persisted) {
		backupPath := d.path + ".old"
		if err := writeAtomic(backupPath, previous, d.perm); err != nil {
			return errs.PersistFailed(backupPath, err)
		}
	}
	return nil
}

func writeAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = io.Copy(tmp, bytes.NewReader(data)); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return rename(tmpName, path)
}
