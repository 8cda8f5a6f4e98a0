// Package plan previews what the SnapDown batch downloader will do with an
// exported snap_export.csv: the target filename derived for each record and
// whether that file already exists in the destination directory (the
// downloader skips those). No network is touched; fetching is the
// downloader's job, not ours.
package plan

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/snapdown/snapexport/export"
)

// Item pairs a record with its derived download target.
type Item struct {
	Record   export.Record
	Filename string
	Exists   bool
}

// extensions mirrors the downloader's format → file extension map.
var extensions = map[string]string{
	"Image": "jpg",
	"Video": "mp4",
	"PNG":   "png",
	"SVG":   "svg",
}

const defaultExtension = "bin"

// ReadCSV parses a snap_export.csv stream back into records. The header row
// is skipped; every data row must carry the five export columns.
func ReadCSV(r io.Reader) ([]export.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("plan: read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("plan: empty csv")
	}

	recs := make([]export.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		recs = append(recs, export.Record{
			Timestamp:   row[0],
			Format:      row[1],
			Latitude:    row[2],
			Longitude:   row[3],
			DownloadURL: row[4],
		})
	}
	return recs, nil
}

// Filename derives the downloader's target name for a record: the timestamp
// with spaces replaced by underscores and colons by dashes, then latitude
// and longitude, then the format's extension.
func Filename(rec export.Record) string {
	ts := strings.ReplaceAll(rec.Timestamp, " ", "_")
	ts = strings.ReplaceAll(ts, ":", "-")
	ext, ok := extensions[rec.Format]
	if !ok {
		ext = defaultExtension
	}
	return fmt.Sprintf("%s_%s_%s.%s", ts, rec.Latitude, rec.Longitude, ext)
}

// Build derives one Item per record against destDir, marking entries whose
// target file is already present.
func Build(recs []export.Record, destDir string) []Item {
	items := make([]Item, 0, len(recs))
	for _, rec := range recs {
		name := Filename(rec)
		_, err := os.Stat(filepath.Join(destDir, name))
		items = append(items, Item{Record: rec, Filename: name, Exists: err == nil})
	}
	return items
}
