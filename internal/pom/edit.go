package pom

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strings"
)

// edit replaces content[start:end] with text.
type edit struct {
	start, end int
	text       []byte
}

// apply performs non-overlapping edits back to front so earlier offsets stay valid.
func apply(data []byte, edits []edit) []byte {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].start > edits[j].start
	})
	out := data
	for _, e := range edits {
		var buf bytes.Buffer
		buf.Grow(len(out) - (e.end - e.start) + len(e.text))
		buf.Write(out[:e.start])
		buf.Write(e.text)
		buf.Write(out[e.end:])
		out = buf.Bytes()
	}
	return out
}

// layout is the whitespace style new elements are written in.
type layout struct {
	newline string
	section string
	element string
	field   string
}

func (d *Document) layout() layout {
	l := layout{newline: "\n"}
	if bytes.Contains(d.content, []byte("\r\n")) {
		l.newline = "\r\n"
	}
	l.section, _ = indentAt(d.content, d.section.outer.start)

	var haveElement, haveField bool
	for _, el := range d.elements {
		if !haveElement {
			l.element, haveElement = indentAt(d.content, el.outer.start)
		}
		if !haveField && el.firstField >= 0 {
			l.field, haveField = indentAt(d.content, el.firstField)
		}
	}

	// The section is a direct child of the root, so its indent is one level.
	unit := l.section
	if unit == "" {
		unit = "    "
	}
	if haveElement && len(l.element) > len(l.section) && strings.HasPrefix(l.element, l.section) {
		unit = l.element[len(l.section):]
	}
	if !haveElement {
		l.element = l.section + unit
	}
	if !haveField {
		l.field = l.element + unit
	}
	return l
}

// indentAt returns the blanks between the start of pos's line and pos.
// It reports false when anything else precedes pos on that line.
func indentAt(data []byte, pos int) (string, bool) {
	i := pos
	for i > 0 && (data[i-1] == ' ' || data[i-1] == '\t') {
		i--
	}
	if i > 0 && data[i-1] != '\n' {
		return "", false
	}
	return string(data[i:pos]), true
}

// lineBreakBefore extends pos backwards over its indentation and the line
// break before it. If pos does not start its line, pos is returned as is.
func lineBreakBefore(data []byte, pos int) (int, bool) {
	i := pos
	for i > 0 && (data[i-1] == ' ' || data[i-1] == '\t') {
		i--
	}
	if i == 0 || data[i-1] != '\n' {
		return pos, false
	}
	i--
	if i > 0 && data[i-1] == '\r' {
		i--
	}
	return i, true
}

func (d *Document) removal(el element) edit {
	start, _ := lineBreakBefore(d.content, el.outer.start)
	return edit{start: start, end: el.outer.end}
}

func (d *Document) versionEdit(el element, version string, l layout) edit {
	value := escape(version)
	switch {
	case el.hasVersion && el.versionEmpty:
		name := tagName(d.content[el.versionOuter.start:el.versionOuter.end])
		text := "<" + name + ">" + value + "</" + name + ">"
		return edit{start: el.versionOuter.start, end: el.versionOuter.end, text: []byte(text)}
	case el.hasVersion:
		return edit{start: el.version.start, end: el.version.end, text: []byte(value)}
	default:
		pos, ownLine := lineBreakBefore(d.content, el.closeStart)
		text := "<version>" + value + "</version>"
		if ownLine {
			text = l.newline + l.field + text
		}
		return edit{start: pos, end: pos, text: []byte(text)}
	}
}

func (d *Document) insertion(deps []Dependency, l layout) edit {
	var b strings.Builder
	for _, dep := range deps {
		b.WriteString(l.newline)
		b.WriteString(l.element)
		writeElement(&b, dep, l)
	}

	sec := d.section
	if sec.selfClosing {
		raw := d.content[sec.outer.start:sec.outer.end]
		open := strings.TrimRight(strings.TrimSuffix(string(raw), "/>"), " \t\r\n") + ">"
		text := open + b.String() + l.newline + l.section + "</" + tagName(raw) + ">"
		return edit{start: sec.outer.start, end: sec.outer.end, text: []byte(text)}
	}

	pos, ownLine := lineBreakBefore(d.content, sec.closeStart)
	if !ownLine {
		b.WriteString(l.newline)
		b.WriteString(l.section)
	}
	return edit{start: pos, end: pos, text: []byte(b.String())}
}

func writeElement(b *strings.Builder, dep Dependency, l layout) {
	b.WriteString("<dependency>")
	b.WriteString(l.newline)
	writeField(b, "groupId", dep.GroupID, l)
	writeField(b, "artifactId", dep.ArtifactID, l)
	if dep.Version != "" {
		writeField(b, "version", dep.Version, l)
	}
	if dep.Classifier != "" {
		writeField(b, "classifier", dep.Classifier, l)
	}
	b.WriteString(l.element)
	b.WriteString("</dependency>")
}

func writeField(b *strings.Builder, name, value string, l layout) {
	b.WriteString(l.field)
	b.WriteString("<" + name + ">")
	b.WriteString(escape(value))
	b.WriteString("</" + name + ">")
	b.WriteString(l.newline)
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// tagName returns the qualified name of the tag that raw starts with.
func tagName(raw []byte) string {
	s := strings.TrimPrefix(string(raw), "<")
	if i := strings.IndexAny(s, " \t\r\n/>"); i >= 0 {
		return s[:i]
	}
	return s
}
