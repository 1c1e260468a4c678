// Package xmltree builds a minimal, namespace-agnostic DOM over XML input.
//
// Elements are matched purely by their unqualified (local) tag name. The
// source schema's namespace prefix has varied across yearly archives and
// must never gate a match.
package xmltree

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ErrNoRootElement is returned when the input holds no element at all.
var ErrNoRootElement = errors.New("document has no root element")

// Element is one node of the parsed tree. Only the local name, the
// character data and the parent/child links are retained.
type Element struct {
	name     string
	text     string
	parent   *Element
	children []*Element
}

// Name returns the unqualified tag name.
func (e *Element) Name() string {
	return e.name
}

// Parent returns the enclosing element, or nil for the subtree root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the direct child elements in document order.
func (e *Element) Children() []*Element {
	return e.children
}

// Text returns the whitespace-trimmed concatenation of all character
// data in the subtree, mirroring the XPath string value of the element.
func (e *Element) Text() string {
	var b strings.Builder

	e.appendText(&b)

	return strings.TrimSpace(b.String())
}

func (e *Element) appendText(b *strings.Builder) {
	b.WriteString(e.text)

	for _, c := range e.children {
		c.appendText(b)
	}
}

// FirstDescendant returns the first descendant (in document order)
// whose unqualified name matches, excluding the element itself.
func (e *Element) FirstDescendant(name string) *Element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}

		if d := c.FirstDescendant(name); d != nil {
			return d
		}
	}

	return nil
}

// Descendants returns every descendant with the given unqualified name
// in document order, excluding the element itself.
func (e *Element) Descendants(name string) []*Element {
	var out []*Element

	e.collect(name, &out)

	return out
}

func (e *Element) collect(name string, out *[]*Element) {
	for _, c := range e.children {
		if c.name == name {
			*out = append(*out, c)
		}

		c.collect(name, out)
	}
}

// Parse reads a whole XML document and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)

	var stack []*Element

	var root *Element

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			elem := &Element{name: t.Name.Local}

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, elem)
				elem.parent = parent
			} else if root == nil {
				root = elem
			}

			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if root == nil {
		return nil, ErrNoRootElement
	}

	return root, nil
}

// EachSubtree streams the token feed and materializes one subtree at a
// time for every element whose unqualified name matches, invoking fn on
// each. The completed subtree is released before the next one is built,
// so peak memory is bounded by a single match even when the combined
// document is very large. A root element that itself matches yields the
// whole document as one subtree.
func EachSubtree(r io.Reader, name string, fn func(*Element) error) error {
	decoder := xml.NewDecoder(r)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != name {
			continue
		}

		elem, err := readSubtree(decoder, start)
		if err != nil {
			return err
		}

		if err := fn(elem); err != nil {
			return err
		}
	}
}

// readSubtree consumes tokens up to the end tag matching start and
// returns the materialized subtree.
func readSubtree(decoder *xml.Decoder, start xml.StartElement) (*Element, error) {
	root := &Element{name: start.Name.Local}
	stack := []*Element{root}

	for len(stack) > 0 {
		tok, err := decoder.Token()
		if err != nil {
			// A truncated subtree is malformed input, even at EOF.
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}

			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			elem := &Element{name: t.Name.Local, parent: stack[len(stack)-1]}
			elem.parent.children = append(elem.parent.children, elem)
			stack = append(stack, elem)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			stack[len(stack)-1].text += string(t)
		}
	}

	return root, nil
}
