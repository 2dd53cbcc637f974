// Package opengraph builds the preview document served to link unfurlers.
package opengraph

import (
	"fmt"

	"golang.org/x/net/html"
)

// Node is a single <meta property content> pair.
type Node struct {
	Property string
	Content  string
}

// NewNode builds an unprefixed node.
func NewNode(property, content string) Node {
	return Node{Property: property, Content: content}
}

// NewOGNode builds an "og:" node.
func NewOGNode(property, content string) Node {
	return NewNode("og:"+property, content)
}

// NewTwitterNode builds a "twitter:" node.
func NewTwitterNode(property, content string) Node {
	return NewNode("twitter:"+property, content)
}

// HTML renders the node as a meta tag.
func (n Node) HTML() string {
	return fmt.Sprintf(`<meta property="%s" content="%s" />`, html.EscapeString(n.Property), html.EscapeString(n.Content))
}
