package htmldoc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// boilerplatePattern matches class and id names of navigation, header,
// footer and sidebar regions
var boilerplatePattern = regexp.MustCompile(
	`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumbs?|` +
		`site-header|page-header|masthead|banner|` +
		`footer|site-footer|page-footer|colophon|` +
		`sidebar|widget-area|widget|aside)([^a-z]|$)`)

// Link density above which a container counts as navigation, and the
// fewest links such a container must hold
const (
	maxLinkDensity  = 0.6
	minNavLinkCount = 4
)

// exclusionChecker decides which elements are page furniture
type exclusionChecker struct {
	mode    NavigationExclusionMode
	body    *html.Node
	wrapper *html.Node // single top-level div or main, if any
	density map[*html.Node]float64
}

func newExclusionChecker(mode NavigationExclusionMode, body *html.Node) *exclusionChecker {
	return &exclusionChecker{
		mode:    mode,
		body:    body,
		wrapper: singleWrapper(body),
		density: make(map[*html.Node]float64),
	}
}

// singleWrapper returns the body's only structural child, as in
// <body><div id="page">...</div></body>
func singleWrapper(body *html.Node) *html.Node {
	var found *html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "div", "main":
			if found != nil {
				return nil
			}
			found = c
		case "script", "style", "noscript", "template":
		default:
			return nil
		}
	}
	return found
}

// exclude reports whether n and its subtree should be skipped
func (ec *exclusionChecker) exclude(n *html.Node) bool {
	if n.Type != html.ElementNode || ec.mode == NavigationExclusionNone {
		return false
	}
	if ec.isSemanticFurniture(n) {
		return true
	}
	if ec.mode >= NavigationExclusionStandard && ec.hasBoilerplateName(n) {
		return true
	}
	return ec.mode >= NavigationExclusionAggressive && ec.isLinkDense(n)
}

func (ec *exclusionChecker) isSemanticFurniture(n *html.Node) bool {
	switch n.Data {
	case "nav", "aside":
		return true
	case "header", "footer":
		return ec.isTopLevel(n)
	}

	switch getAttr(n, "role") {
	case "navigation", "complementary":
		return true
	case "banner", "contentinfo":
		return ec.isTopLevel(n)
	}
	return false
}

func (ec *exclusionChecker) isTopLevel(n *html.Node) bool {
	return n.Parent != nil && (n.Parent == ec.body || (ec.wrapper != nil && n.Parent == ec.wrapper))
}

func (ec *exclusionChecker) hasBoilerplateName(n *html.Node) bool {
	for _, key := range []string{"class", "id"} {
		if v := getAttr(n, key); v != "" && boilerplatePattern.MatchString(v) {
			return true
		}
	}
	return false
}

func (ec *exclusionChecker) isLinkDense(n *html.Node) bool {
	switch n.Data {
	case "div", "section", "ul", "ol":
	default:
		return false
	}

	d, ok := ec.density[n]
	if !ok {
		if total := textLength(n); total > 0 {
			d = float64(linkTextLength(n)) / float64(total)
		}
		ec.density[n] = d
	}
	return d > maxLinkDensity && countLinks(n) >= minNavLinkCount
}

// textLength counts the non-space bytes of text under n
func textLength(n *html.Node) int {
	if n.Type == html.TextNode {
		return len(strings.TrimSpace(n.Data))
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLength(c)
	}
	return total
}

func linkTextLength(n *html.Node) int {
	if n.Type == html.ElementNode && n.Data == "a" {
		return textLength(n)
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += linkTextLength(c)
	}
	return total
}

func countLinks(n *html.Node) int {
	count := 0
	if n.Type == html.ElementNode && n.Data == "a" {
		count = 1
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countLinks(c)
	}
	return count
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
