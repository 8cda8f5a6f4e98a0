// Package tabsource reads ordered data rows out of a loaded HTML document.
//
// The export page this tool targets renders a single table: one header row
// followed by data rows. Parse locates that table and returns the data rows
// in document order. Each cell exposes its collapsed visible text, its raw
// outer HTML for diagnostics, and the inline handler attribute of an
// embedded link element when one is present. Interpreting the cells is the
// caller's job; the page markup contract is externally imposed and not
// guaranteed stable, so everything page-specific stays in this package.
package tabsource

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoTable is returned when the document contains no table element.
// This is a structural failure: without a table there is nothing to extract.
var ErrNoTable = errors.New("tabsource: no table in document")

// handlerAttr is the inline handler attribute the export page puts on its
// download links.
const handlerAttr = "onclick"

// Cell is one table cell.
type Cell struct {
	Text       string // visible text, whitespace-collapsed
	Raw        string // outer HTML, kept verbatim for diagnostics
	Handler    string // inline handler attribute of an embedded link
	HasHandler bool   // whether such a link attribute was found
}

// Row is one data row: its cells in document order.
type Row struct {
	Cells []Cell
}

// Parse locates the first table in rawHTML and returns all rows after the
// first (header) row, preserving document order. A document without a table
// yields ErrNoTable; a table with only a header yields an empty slice.
func Parse(rawHTML []byte) ([]Row, error) {
	doc, err := html.Parse(bytes.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("tabsource: parse HTML: %w", err)
	}

	table := findTable(doc)
	if table == nil {
		return nil, ErrNoTable
	}

	trs := collectRows(table)
	if len(trs) <= 1 {
		return nil, nil
	}
	trs = trs[1:] // drop header

	rows := make([]Row, 0, len(trs))
	for _, tr := range trs {
		rows = append(rows, buildRow(tr))
	}
	return rows, nil
}

// findTable returns the first table element in the document, depth-first.
func findTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Table {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTable(c); t != nil {
			return t
		}
	}
	return nil
}

// collectRows gathers the tr elements of a table in document order,
// descending through thead/tbody but not into nested tables.
func collectRows(table *html.Node) []*html.Node {
	var trs []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Tr:
				trs = append(trs, c)
			case atom.Table:
				// Nested table: its rows belong to it, not us.
			default:
				walk(c)
			}
		}
	}
	walk(table)
	return trs
}

// buildRow converts a tr element into a Row. Cells are the direct td/th
// children in document order.
func buildRow(tr *html.Node) Row {
	var cells []Cell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom != atom.Td && c.DataAtom != atom.Th {
			continue
		}
		cell := Cell{
			Text: collectText(c),
			Raw:  renderNode(c),
		}
		if link := findLinkHandler(c); link != nil {
			cell.Handler = *link
			cell.HasHandler = true
		}
		cells = append(cells, cell)
	}
	return Row{Cells: cells}
}

// findLinkHandler looks for a link element carrying the inline handler
// attribute anywhere in the cell subtree and returns its value, or nil.
func findLinkHandler(n *html.Node) *string {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		for _, a := range n.Attr {
			if a.Key == handlerAttr {
				v := a.Val
				return &v
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v := findLinkHandler(c); v != nil {
			return v
		}
	}
	return nil
}

// collectText extracts all visible text from a node subtree, collapsing
// whitespace between text nodes to single spaces.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.Join(strings.Fields(n.Data), " ")
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// renderNode serialises an HTML node subtree back to a string.
func renderNode(n *html.Node) string {
	var buf bytes.Buffer
	html.Render(&buf, n)
	return buf.String()
}
