package parser

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"siderunner/internal/domain"

	"golang.org/x/net/html/charset"
)

// NodeType tells elements from text
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is a minimal DOM node. Text nodes keep their data even when empty,
// which is how an empty CDATA section stays distinct from an empty element.
type Node struct {
	Type     NodeType
	Name     string // local element name
	Attrs    []xml.Attr
	Data     string // text node data
	Children []*Node
}

// ParseDocument reads a well-formed XML/XHTML document into a node tree
func ParseDocument(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = true
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel

	var root *Node
	var stack []*Node

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.MalformedDocumentError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Type: ElementNode, Name: t.Name.Local, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, &domain.MalformedDocumentError{Reason: "more than one root element"}
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Type: TextNode, Data: string(t)})
		}
	}

	if root == nil {
		return nil, &domain.MalformedDocumentError{Reason: "no root element"}
	}
	return root, nil
}

// Elements returns all descendant elements with the given name in document order
func (n *Node) Elements(name string) []*Node {
	var found []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			if c.Type != ElementNode {
				continue
			}
			if c.Name == name {
				found = append(found, c)
			}
			walk(c)
		}
	}
	walk(n)
	return found
}

// First returns the first descendant element with the given name, or nil
func (n *Node) First(name string) *Node {
	if els := n.Elements(name); len(els) > 0 {
		return els[0]
	}
	return nil
}

// Attr returns the value of the named attribute
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// TextContent concatenates all descendant text
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Data
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}
