// Package markup builds and serializes the report node tree.
//
// Attributes are written in insertion order and attributes with an empty value are left out,
// so a conditional attribute (like checked) is expressed by passing an empty value.
package markup

import (
	"fmt"
	"strings"

	"github.com/acarl005/stripansi"
	"golang.org/x/net/html"
)

// Attr ...
func Attr(key, value string) html.Attribute {
	return html.Attribute{Key: key, Val: value}
}

// Element creates a detached element node.
func Element(tag string, attrs ...html.Attribute) *html.Node {
	node := &html.Node{Type: html.ElementNode, Data: tag}
	for _, attr := range attrs {
		if attr.Val == "" {
			continue
		}
		node.Attr = append(node.Attr, attr)
	}
	return node
}

// Text creates a detached text node.
func Text(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Append creates an element as the last child of parent and returns it.
func Append(parent *html.Node, tag string, attrs ...html.Attribute) *html.Node {
	node := Element(tag, attrs...)
	parent.AppendChild(node)
	return node
}

// AppendText creates an element holding text as the last child of parent and returns it.
func AppendText(parent *html.Node, tag, text string, attrs ...html.Attribute) *html.Node {
	node := Append(parent, tag, attrs...)
	if text != "" {
		node.AppendChild(Text(text))
	}
	return node
}

// Render serializes the node and its descendants.
func Render(node *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, node); err != nil {
		return "", fmt.Errorf("failed to render <%s>: %w", node.Data, err)
	}
	return b.String(), nil
}

// Sanitize removes terminal escape sequences and characters that are not allowed in
// document text from runner supplied output.
func Sanitize(s string) string {
	s = stripansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if isAllowed(r) {
			return r
		}
		return -1
	}, s)
}

func isAllowed(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFC:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	default:
		return false
	}
}
