package plan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/snapdown/snapexport/export"
)

func TestReadCSV_RoundTrip(t *testing.T) {
	records := []export.Record{
		{Timestamp: "2023-01-01 00:00 UTC", Format: "Image", Latitude: "34.123", Longitude: "-118.456", DownloadURL: "https://example.com/a"},
		{Timestamp: "2023-01-02 06:30 UTC", Format: "Video", Latitude: "-12.5", Longitude: "99.0", DownloadURL: "https://example.com/b"},
	}

	got, err := ReadCSV(strings.NewReader(string(export.MarshalCSV(records))))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("records: got %d, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestReadCSV_WrongColumnCount(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("\"a\",\"b\"\n\"1\",\"2\"")); err == nil {
		t.Fatal("expected an error for a two-column csv")
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		rec  export.Record
		want string
	}{
		{
			export.Record{Timestamp: "2023-01-01 00:00 UTC", Format: "Image", Latitude: "34.123", Longitude: "-118.456"},
			"2023-01-01_00-00_UTC_34.123_-118.456.jpg",
		},
		{
			export.Record{Timestamp: "t", Format: "Video", Latitude: "1", Longitude: "2"},
			"t_1_2.mp4",
		},
		{
			export.Record{Timestamp: "t", Format: "PNG", Latitude: "1", Longitude: "2"},
			"t_1_2.png",
		},
		{
			export.Record{Timestamp: "t", Format: "SVG", Latitude: "1", Longitude: "2"},
			"t_1_2.svg",
		},
		{
			export.Record{Timestamp: "t", Format: "Hologram", Latitude: "1", Longitude: "2"},
			"t_1_2.bin",
		},
	}
	for _, tc := range cases {
		if got := Filename(tc.rec); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.rec.Format, got, tc.want)
		}
	}
}

func TestBuild_MarksExisting(t *testing.T) {
	dir := t.TempDir()
	records := []export.Record{
		{Timestamp: "a", Format: "Image", Latitude: "1", Longitude: "2"},
		{Timestamp: "b", Format: "Image", Latitude: "3", Longitude: "4"},
	}

	// Pre-create the first record's target.
	if err := os.WriteFile(filepath.Join(dir, Filename(records[0])), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	items := Build(records, dir)
	if len(items) != 2 {
		t.Fatalf("items: got %d, want 2", len(items))
	}
	if !items[0].Exists {
		t.Error("first item should be marked existing")
	}
	if items[1].Exists {
		t.Error("second item should not be marked existing")
	}
}
