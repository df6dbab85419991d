package internal

import (
	"strings"

	"golang.org/x/net/html"
)

func WalkNodes(node *html.Node, fn func(*html.Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		WalkNodes(child, fn)
	}
}

// FindElement searches descendants only; root itself is never returned.
func FindElement(root *html.Node, match func(*html.Node) bool) *html.Node {
	var result *html.Node
	for child := firstChild(root); child != nil && result == nil; child = child.NextSibling {
		WalkNodes(child, func(n *html.Node) bool {
			if result != nil {
				return false
			}
			if n.Type == html.ElementNode && match(n) {
				result = n
				return false
			}
			return true
		})
	}
	return result
}

func FindElementByTag(root *html.Node, tagName string) *html.Node {
	return FindElement(root, func(n *html.Node) bool {
		return n.Data == tagName
	})
}

func FindAllByTag(root *html.Node, tagName string) []*html.Node {
	var nodes []*html.Node
	for child := firstChild(root); child != nil; child = child.NextSibling {
		WalkNodes(child, func(n *html.Node) bool {
			if n.Type == html.ElementNode && n.Data == tagName {
				nodes = append(nodes, n)
			}
			return true
		})
	}
	return nodes
}

func firstChild(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	return n.FirstChild
}

func GetAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val, true
		}
	}
	return "", false
}

func HasClass(n *html.Node, class string) bool {
	val, ok := GetAttr(n, "class")
	return ok && classMatches(val, class)
}

// classMatches accepts the whole attribute value or any whitespace-separated token.
func classMatches(val, class string) bool {
	if class == "" {
		return false
	}
	if val == class {
		return true
	}
	for _, token := range strings.Fields(val) {
		if token == class {
			return true
		}
	}
	return false
}

// Whitespace-only nodes take part in the join: "<td>a <b>b</b></td>" yields "a  b".
func GetTextContent(node *html.Node) string {
	var sb strings.Builder
	sb.Grow(builderInitialSize)
	first := true
	WalkNodes(node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			if !first {
				sb.WriteByte(textSeparator)
			}
			sb.WriteString(n.Data)
			first = false
		}
		return true
	})
	return strings.TrimSpace(sb.String())
}

func GetStrippedText(node *html.Node) string {
	var sb strings.Builder
	sb.Grow(builderInitialSize)
	WalkNodes(node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(n.Data))
		}
		return true
	})
	return sb.String()
}

func ExceedsDepth(node *html.Node, limit int) bool {
	return exceedsDepth(node, 0, limit)
}

func exceedsDepth(n *html.Node, depth, limit int) bool {
	if depth > limit {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if exceedsDepth(c, depth+1, limit) {
			return true
		}
	}
	return false
}
