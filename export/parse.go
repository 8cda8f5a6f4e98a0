package export

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/snapdown/snapexport/tabsource"
)

// Row-level failure reasons. Each validation stage short-circuits to a
// distinct one; the offending row is logged and skipped, never fatal.
var (
	ErrCellCount      = errors.New("unexpected cell count")
	ErrLocation       = errors.New("location text has no coordinate pair")
	ErrMissingHandler = errors.New("link cell has no handler attribute")
	ErrBadHandlerURL  = errors.New("handler embeds no quoted https url")
)

// wantCells is the column count the export page renders per data row:
// timestamp, format, location, download link.
const wantCells = 4

// locationRe matches a signed-decimal pair "<lat>, <long>", tolerating label
// text around the numbers ("Lat: 34.123, Long: -118.456").
var locationRe = regexp.MustCompile(`([+-]?\d+(?:\.\d+)?)\s*,[^0-9+-]*([+-]?\d+(?:\.\d+)?)`)

// handlerURLRe pulls the single-quoted https URL out of an inline handler
// attribute value.
var handlerURLRe = regexp.MustCompile(`'(https://[^']*)'`)

// parseRecord validates one row into a Record. Stages, in order: cell
// count, timestamp/format text, location pair, handler URL. The first
// failing stage decides the returned error.
func parseRecord(row tabsource.Row) (Record, error) {
	if len(row.Cells) != wantCells {
		return Record{}, ErrCellCount
	}

	rec := Record{
		Timestamp: strings.TrimSpace(row.Cells[0].Text),
		Format:    strings.TrimSpace(row.Cells[1].Text),
	}

	m := locationRe.FindStringSubmatch(row.Cells[2].Text)
	if m == nil {
		return Record{}, ErrLocation
	}
	rec.Latitude, rec.Longitude = m[1], m[2]

	link := row.Cells[3]
	if !link.HasHandler {
		return Record{}, ErrMissingHandler
	}
	u, ok := handlerURL(link.Handler)
	if !ok {
		return Record{}, ErrBadHandlerURL
	}
	rec.DownloadURL = u

	return rec, nil
}

// handlerURL extracts the single-quoted https URL embedded in an inline
// handler attribute value. Isolated on purpose: the portal's markup contract
// is externally imposed, and when it changes this is the function to fix.
func handlerURL(handler string) (string, bool) {
	m := handlerURLRe.FindStringSubmatch(handler)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// stripPolicy removes markup from raw cell content for the human-readable
// diagnostic summary. Export pages are untrusted input.
var stripPolicy = bluemonday.StrictPolicy()

// cellText renders a row's visible cell text for diagnostics, markup
// stripped, cells separated by " | ".
func cellText(row tabsource.Row) string {
	parts := make([]string, 0, len(row.Cells))
	for _, c := range row.Cells {
		parts = append(parts, strings.TrimSpace(stripPolicy.Sanitize(c.Raw)))
	}
	return strings.Join(parts, " | ")
}

// rawCells renders a row's literal cell markup for diagnostics, each cell
// Go-quoted. Nothing is stripped: a failure in the handler attribute has to
// survive into the log for the operator to find the broken source row.
func rawCells(row tabsource.Row) string {
	parts := make([]string, 0, len(row.Cells))
	for _, c := range row.Cells {
		parts = append(parts, strconv.Quote(c.Raw))
	}
	return strings.Join(parts, " ")
}
