// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xmltree decodes an XML document into a generic element tree for
// responses whose shape varies by request, and exposes the decoder setup
// shared with the typed parsers.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html/charset"
)

// Node is one element with its attributes, child elements and text.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []*Node    `xml:",any"`
	Text     string     `xml:",chardata"`
}

// NewDecoder returns a decoder that honours non-UTF-8 encoding declarations.
func NewDecoder(data []byte) *xml.Decoder {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charset.NewReaderLabel
	return d
}

// Unmarshal decodes data into v with charset support.
func Unmarshal(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("empty document")
	}
	if err := NewDecoder(data).Decode(v); err != nil {
		return errors.Wrap(err, "decoding xml")
	}
	return nil
}

// Parse decodes data into a tree rooted at the document element.
func Parse(data []byte) (*Node, error) {
	var root Node
	if err := Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

// Name returns the element's local name.
func (n *Node) Name() string { return n.XMLName.Local }

// Attr returns the value of the named attribute, or "".
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Value returns the trimmed text content.
func (n *Node) Value() string { return strings.TrimSpace(n.Text) }

// Child returns the first direct child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Find returns the first descendant named name in document order, or nil.
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if c.Name() == name {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant named name in document order. Matches are
// not searched for nested matches.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name() == name {
			out = append(out, c)
			continue
		}
		out = append(out, c.FindAll(name)...)
	}
	return out
}

// FindText returns the trimmed text of the first descendant named name and
// whether it exists.
func (n *Node) FindText(name string) (string, bool) {
	if n.Name() == name {
		return n.Value(), true
	}
	found := n.Find(name)
	if found == nil {
		return "", false
	}
	return found.Value(), true
}
