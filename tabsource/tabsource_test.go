package tabsource

import (
	"errors"
	"strings"
	"testing"
)

var exportPage = []byte(`<!DOCTYPE html>
<html>
<head><title>Snap Export</title></head>
<body>
<nav><a href="/">Home</a></nav>
<table id="export">
<tr><th>Timestamp</th><th>Format</th><th>Location</th><th>Download</th></tr>
<tr>
  <td> 2023-01-01 00:00 UTC </td>
  <td>Image</td>
  <td>Lat: 34.123, Long: -118.456</td>
  <td><a href="#" onclick="startDownload('https://example.com/a'); return false">Get</a></td>
</tr>
<tr>
  <td>2023-01-02 06:30 UTC</td>
  <td>Video</td>
  <td>Lat: -12.5, Long: 99.0</td>
  <td><a href="#">no handler here</a></td>
</tr>
</table>
</body>
</html>`)

func TestParse_RowsAfterHeader(t *testing.T) {
	rows, err := Parse(exportPage)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if len(rows[0].Cells) != 4 {
		t.Fatalf("cells: got %d, want 4", len(rows[0].Cells))
	}
	if got := rows[0].Cells[0].Text; got != "2023-01-01 00:00 UTC" {
		t.Errorf("timestamp text: got %q", got)
	}
	if got := rows[1].Cells[1].Text; got != "Video" {
		t.Errorf("format text: got %q", got)
	}
}

func TestParse_CellHandler(t *testing.T) {
	rows, err := Parse(exportPage)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	link := rows[0].Cells[3]
	if !link.HasHandler {
		t.Fatal("first row link cell should expose its handler attribute")
	}
	if !strings.Contains(link.Handler, "https://example.com/a") {
		t.Errorf("handler: got %q", link.Handler)
	}

	bare := rows[1].Cells[3]
	if bare.HasHandler {
		t.Errorf("second row link cell has no handler, got %q", bare.Handler)
	}
}

func TestParse_CellRawPreserved(t *testing.T) {
	rows, err := Parse(exportPage)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	raw := rows[0].Cells[3].Raw
	if !strings.Contains(raw, "onclick") || !strings.Contains(raw, "<a") {
		t.Errorf("raw cell should keep the original markup, got %q", raw)
	}
}

func TestParse_NoTable(t *testing.T) {
	_, err := Parse([]byte(`<html><body><p>nothing tabular</p></body></html>`))
	if !errors.Is(err, ErrNoTable) {
		t.Fatalf("got %v, want ErrNoTable", err)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, err := Parse([]byte(`<table><tr><th>a</th><th>b</th></tr></table>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows: got %d, want 0", len(rows))
	}
}

func TestParse_TbodyAndNestedTable(t *testing.T) {
	page := []byte(`<table>
<thead><tr><th>h1</th></tr></thead>
<tbody>
<tr><td>outer <table><tr><td>inner</td></tr></table></td></tr>
<tr><td>second</td></tr>
</tbody>
</table>`)
	rows, err := Parse(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2 (nested table rows must not leak)", len(rows))
	}
	if got := rows[1].Cells[0].Text; got != "second" {
		t.Errorf("second row text: got %q", got)
	}
}

func TestParse_WhitespaceCollapse(t *testing.T) {
	page := []byte(`<table><tr><th>h</th></tr><tr><td>  a
	b   <span>c</span>  </td></tr></table>`)
	rows, err := Parse(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := rows[0].Cells[0].Text; got != "a b c" {
		t.Errorf("collapsed text: got %q, want %q", got, "a b c")
	}
}
