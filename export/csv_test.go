package export

import (
	"encoding/csv"
	"strings"
	"testing"
)

func TestMarshalCSV_Example(t *testing.T) {
	records := []Record{{
		Timestamp:   "2023-01-01 00:00 UTC",
		Format:      "Image",
		Latitude:    "34.123",
		Longitude:   "-118.456",
		DownloadURL: "https://example.com/a",
	}}

	want := `"timestamp_utc","format","latitude","longitude","download_url"
"2023-01-01 00:00 UTC","Image","34.123","-118.456","https://example.com/a"`

	if got := string(MarshalCSV(records)); got != want {
		t.Errorf("csv:\ngot  %q\nwant %q", got, want)
	}
}

func TestMarshalCSV_QuoteEscaping(t *testing.T) {
	records := []Record{{
		Timestamp:   `abc"def`,
		Format:      "Image",
		Latitude:    "1",
		Longitude:   "2",
		DownloadURL: "https://x",
	}}

	out := string(MarshalCSV(records))
	if !strings.Contains(out, `"abc""def"`) {
		t.Fatalf("embedded quote should be doubled, got %q", out)
	}

	// A standards-compliant reader must recover the original value.
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got := rows[1][0]; got != `abc"def` {
		t.Errorf("round-trip: got %q, want %q", got, `abc"def`)
	}
}

func TestMarshalCSV_Empty(t *testing.T) {
	got := string(MarshalCSV(nil))
	if got != csvHeader {
		t.Errorf("empty export should be header only, got %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("no trailing newline expected")
	}
}

func TestMarshalCSV_AllFieldsQuoted(t *testing.T) {
	records := []Record{{Timestamp: "t", Format: "f", Latitude: "1", Longitude: "2", DownloadURL: "u"}}
	out := string(MarshalCSV(records))
	line := strings.Split(out, "\n")[1]
	if line != `"t","f","1","2","u"` {
		t.Errorf("every field must be quoted, got %q", line)
	}
}
