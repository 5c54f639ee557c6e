package pom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// span is a half-open byte range into the document content.
type span struct {
	start, end int
}

// section locates the root's <dependencies> element.
type section struct {
	found       bool
	outer       span
	closeStart  int
	selfClosing bool
}

// element locates one <dependency> and the parts of it Reconcile may edit.
type element struct {
	dep         Dependency
	outer       span
	closeStart  int
	selfClosing bool
	firstField  int

	hasVersion   bool
	versionEmpty bool
	version      span
	versionOuter span
}

// scan tokenizes data and records byte offsets of the dependency section.
// The decoder's InputOffset after each token gives exact element bounds.
func scan(data []byte) (section, []element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	// Edits are made on raw bytes, so no transcoding happens. A non-UTF-8
	// declaration is accepted as long as the content is plain ASCII.
	var charset string
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		charset = label
		return input, nil
	}

	var (
		sec       section
		elems     []element
		cur       *element
		inSection bool
		depth     int
		roots     int

		field      string
		fieldStart int
		fieldInner int
		text       bytes.Buffer
	)

	for {
		start := int(dec.InputOffset())
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if charset != "" && strings.Contains(err.Error(), "invalid UTF-8") {
				return section{}, nil, fmt.Errorf("declared encoding %s is not supported, only UTF-8 content can be edited: %w", charset, err)
			}
			return section{}, nil, err
		}
		end := int(dec.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 1:
				roots++
				if roots > 1 {
					return section{}, nil, errors.New("multiple root elements")
				}
			case depth == 2 && !sec.found && t.Name.Local == "dependencies":
				sec = section{found: true, outer: span{start: start}}
				inSection = true
			case depth == 3 && inSection && t.Name.Local == "dependency":
				cur = &element{outer: span{start: start}, firstField: -1}
			case depth == 4 && cur != nil:
				if cur.firstField < 0 {
					cur.firstField = start
				}
				field = t.Name.Local
				fieldStart, fieldInner = start, end
				text.Reset()
			}

		case xml.EndElement:
			switch {
			case depth == 4 && cur != nil:
				value := strings.TrimSpace(text.String())
				switch field {
				case "groupId":
					cur.dep.GroupID = value
				case "artifactId":
					cur.dep.ArtifactID = value
				case "classifier":
					cur.dep.Classifier = value
				case "version":
					cur.dep.Version = value
					cur.hasVersion = true
					cur.versionEmpty = start == end
					cur.version = span{fieldInner, start}
					cur.versionOuter = span{fieldStart, end}
				}
				field = ""
			case depth == 3 && cur != nil:
				cur.outer.end = end
				cur.closeStart = start
				cur.selfClosing = start == end
				elems = append(elems, *cur)
				cur = nil
			case depth == 2 && inSection:
				sec.outer.end = end
				sec.closeStart = start
				sec.selfClosing = start == end
				inSection = false
			}
			depth--

		case xml.CharData:
			if depth == 4 && cur != nil && field != "" {
				text.Write(t)
			}
		}
	}

	if roots == 0 {
		return section{}, nil, errors.New("no root element")
	}
	return sec, elems, nil
}
