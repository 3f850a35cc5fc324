package gpxdata

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// element is a minimal DOM node. Names are local names only; namespaces are
// dropped so <wpt> and <gpx:wpt> look the same.
type element struct {
	name  string
	attrs []xml.Attr
	parts []any // string or *element, in document order
}

func (e *element) attr(local string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// child returns the first direct child called name, or nil.
func (e *element) child(name string) *element {
	for _, p := range e.parts {
		if c, ok := p.(*element); ok && c.name == name {
			return c
		}
	}
	return nil
}

// descendants returns every element called name below e, in document order.
func (e *element) descendants(name string) []*element {
	var out []*element
	var walk func(*element)
	walk = func(n *element) {
		for _, p := range n.parts {
			c, ok := p.(*element)
			if !ok {
				continue
			}
			if c.name == name {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// text is the concatenated character data of e and everything below it.
func (e *element) text() string {
	var sb strings.Builder
	var walk func(*element)
	walk = func(n *element) {
		for _, p := range n.parts {
			switch v := p.(type) {
			case string:
				sb.WriteString(v)
			case *element:
				walk(v)
			}
		}
	}
	walk(e)
	return sb.String()
}

// childText returns the text of the first direct child called name.
func (e *element) childText(name string) (string, bool) {
	c := e.child(name)
	if c == nil {
		return "", false
	}
	return c.text(), true
}

// readTree decodes a whole document. The returned node is a synthetic
// document node whose only child is the root element.
func readTree(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	doc := &element{}
	stack := []*element{doc}
	sawRoot := false

	fail := func(err error) error {
		var se *xml.SyntaxError
		if errors.As(err, &se) {
			return &ParseError{Line: se.Line, Err: errors.New(se.Msg)}
		}
		line, _ := dec.InputPos()
		return &ParseError{Line: line, Err: err}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fail(err)
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			if top == doc && sawRoot {
				return nil, fail(errors.New("extra content after document element"))
			}
			el := &element{name: t.Name.Local, attrs: append([]xml.Attr(nil), t.Attr...)}
			top.parts = append(top.parts, el)
			stack = append(stack, el)
			sawRoot = true
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if top == doc {
				if strings.TrimSpace(string(t)) != "" {
					return nil, fail(errors.New("text outside document element"))
				}
				continue
			}
			top.parts = append(top.parts, string(t))
		}
	}
	if !sawRoot {
		return nil, fail(errors.New("no document element"))
	}
	if len(stack) != 1 {
		return nil, fail(errors.New("unexpected end of document"))
	}
	return doc, nil
}
