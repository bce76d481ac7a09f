// Package htmltable walks legislation.gov.uk's HTML listing/changes tables,
// shared by the New-Laws Fetcher (§4.5) and Amendment Fetcher (§4.10).
package htmltable

import (
	"strings"

	"golang.org/x/net/html"
)

// Row is one <tr> reduced to its cell text and any anchor href found in it.
type Row struct {
	Cells []string
	Href  string
}

// ParseTables parses body and returns every <tr> of every <table> in the
// document as a Row, in document order.
func ParseTables(body []byte) ([]Row, error) {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	var rows []Row
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			row := extractRow(n)
			if len(row.Cells) > 0 {
				rows = append(rows, row)
			}
			// table rows do not nest; still recurse for nested tables.
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return rows, nil
}

func extractRow(tr *html.Node) Row {
	var row Row
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		text := extractText(c)
		row.Cells = append(row.Cells, strings.TrimSpace(text))
		if row.Href == "" {
			if href, ok := findFirstHref(c); ok {
				row.Href = href
			}
		}
	}
	return row
}

func extractText(n *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return collapseWhitespace(sb.String())
}

func findFirstHref(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key == "href" {
				return attr.Val, true
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if href, ok := findFirstHref(c); ok {
			return href, ok
		}
	}
	return "", false
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.TrimSpace(strings.Join(fields, " "))
}
