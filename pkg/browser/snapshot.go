package browser

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/net/html"
)

// Tags removed from snapshots together with their contents.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"embed":    true,
	"object":   true,
	"svg":      true,
}

// Block-level tags, indented on their own lines for readability.
var blockTags = map[string]bool{
	"div":        true,
	"p":          true,
	"section":    true,
	"article":    true,
	"header":     true,
	"footer":     true,
	"nav":        true,
	"main":       true,
	"aside":      true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"ul":         true,
	"ol":         true,
	"li":         true,
	"table":      true,
	"tr":         true,
	"td":         true,
	"th":         true,
	"form":       true,
	"fieldset":   true,
	"blockquote": true,
	"pre":        true,
}

// Void tags never get a closing tag.
var voidTags = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// Attributes kept on every tag.
var globalAttrs = map[string]bool{
	"id":               true,
	"class":            true,
	"role":             true,
	"aria-label":       true,
	"aria-describedby": true,
}

// renderSnapshot parses raw HTML and rewrites it with scripts, styles,
// and presentation noise stripped. maxLength <= 0 disables truncation.
func renderSnapshot(raw string, maxLength int) (*Snapshot, error) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("browser: parse html: %w", err)
	}
	if maxLength <= 0 {
		maxLength = math.MaxInt
	}

	r := &htmlRenderer{max: maxLength}
	r.walk(doc, 0)

	return &Snapshot{
		Title:       documentTitle(doc),
		Description: metaDescription(doc),
		HTML:        r.sb.String(),
		Truncated:   r.truncated,
	}, nil
}

// htmlRenderer accumulates the cleaned document while tracking how
// much of the text budget is spent.
type htmlRenderer struct {
	sb        strings.Builder
	length    int
	max       int
	truncated bool
}

func (r *htmlRenderer) walk(n *html.Node, depth int) {
	if r.truncated {
		return
	}
	if r.length >= r.max {
		r.truncated = true
		return
	}

	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		r.text(n)
	case html.ElementNode:
		if skippedTags[strings.ToLower(n.Data)] {
			return
		}
		r.element(n, depth)
	default:
		// Document and fragment nodes only carry children.
		r.children(n, depth)
	}
}

func (r *htmlRenderer) text(n *html.Node) {
	text := strings.TrimSpace(n.Data)
	if text == "" {
		return
	}
	if r.length+len(text) > r.max {
		remaining := r.max - r.length
		r.sb.WriteString(text[:remaining])
		r.sb.WriteString("...")
		r.length = r.max
		r.truncated = true
		return
	}
	r.sb.WriteString(text)
	r.length += len(text)
}

func (r *htmlRenderer) element(n *html.Node, depth int) {
	tag := strings.ToLower(n.Data)

	if depth > 0 && blockTags[tag] {
		r.sb.WriteString("\n")
		r.sb.WriteString(strings.Repeat("  ", depth))
	}

	r.sb.WriteString("<")
	r.sb.WriteString(tag)
	for _, attr := range n.Attr {
		if keepAttr(tag, attr.Key) {
			fmt.Fprintf(&r.sb, ` %s="%s"`, attr.Key, html.EscapeString(attr.Val))
		}
	}
	r.sb.WriteString(">")
	r.length += len(tag) + 2

	r.children(n, depth+1)

	if !voidTags[tag] {
		if blockTags[tag] {
			r.sb.WriteString("\n")
			r.sb.WriteString(strings.Repeat("  ", depth))
		}
		r.sb.WriteString("</")
		r.sb.WriteString(tag)
		r.sb.WriteString(">")
		r.length += len(tag) + 3
	}
}

func (r *htmlRenderer) children(n *html.Node, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c, depth)
		if r.truncated {
			return
		}
	}
}

// keepAttr reports whether an attribute survives cleaning: global
// attributes, data-* hooks, and per-tag attributes useful for locating
// or describing elements.
func keepAttr(tag, key string) bool {
	key = strings.ToLower(key)
	if globalAttrs[key] || strings.HasPrefix(key, "data-") {
		return true
	}
	switch tag {
	case "a":
		return key == "href" || key == "target"
	case "img":
		return key == "src" || key == "alt"
	case "input", "textarea", "select":
		return key == "name" || key == "type" || key == "placeholder" || key == "value"
	case "button":
		return key == "type" || key == "name"
	case "form":
		return key == "action" || key == "method"
	case "table":
		return key == "summary"
	}
	return false
}

// documentTitle returns the text of the first <title> element.
func documentTitle(doc *html.Node) string {
	var title string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if title != "" {
				return
			}
		}
	}
	traverse(doc)
	return title
}

// metaDescription returns the content of <meta name="description">.
func metaDescription(doc *html.Node) string {
	var description string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var isDescription bool
			var content string
			for _, attr := range n.Attr {
				if attr.Key == "name" && attr.Val == "description" {
					isDescription = true
				}
				if attr.Key == "content" {
					content = attr.Val
				}
			}
			if isDescription && content != "" {
				description = strings.TrimSpace(content)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if description != "" {
				return
			}
		}
	}
	traverse(doc)
	return description
}
