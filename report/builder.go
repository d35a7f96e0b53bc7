// Package report renders collected audit findings: a composed markdown
// application map, structured JSON results, a console summary table, and
// CSV exports. All file output is written atomically in one shot, so a
// crashed run leaves either the previous report or nothing, never a
// half-written file.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Builder accumulates named markdown sections in memory and performs one
// coordinated write. It replaces the write-then-append discipline the
// mapper scripts used across separate invocations: sections are composed
// in insertion order and appending never disturbs earlier content.
type Builder struct {
	sections []section
}

type section struct {
	name string
	body string
}

// NewBuilder creates an empty report builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add sets a named section's body. A new name appends after the existing
// sections; re-adding a name replaces that section in place, so regenerating
// a page's map is idempotent.
func (b *Builder) Add(name, body string) {
	for i := range b.sections {
		if b.sections[i].name == name {
			b.sections[i].body = body
			return
		}
	}
	b.sections = append(b.sections, section{name: name, body: body})
}

// Len returns the number of sections added so far.
func (b *Builder) Len() int {
	return len(b.sections)
}

// String renders all sections in order.
func (b *Builder) String() string {
	var sb strings.Builder
	for _, s := range b.sections {
		sb.WriteString(s.body)
		if !strings.HasSuffix(s.body, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Write renders the composed report and writes it atomically to path.
func (b *Builder) Write(path string) error {
	return writeFileAtomic(path, []byte(b.String()))
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so readers never observe a partial report.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("report: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("report: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("report: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("report: rename into place: %w", err)
	}
	return nil
}
