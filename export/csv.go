package export

import "strings"

// csvHeader is the fixed artifact header row.
const csvHeader = `"timestamp_utc","format","latitude","longitude","download_url"`

// MarshalCSV renders accepted records in the quote-always CSV dialect the
// SnapDown downloader consumes: every field double-quoted regardless of
// content, embedded quotes doubled, fields comma-joined, rows joined by \n
// with no trailing newline. The byte-exact contract is why this is not
// encoding/csv, which quotes minimally.
func MarshalCSV(records []Record) []byte {
	rows := make([]string, 0, len(records)+1)
	rows = append(rows, csvHeader)
	for _, r := range records {
		fields := [...]string{r.Timestamp, r.Format, r.Latitude, r.Longitude, r.DownloadURL}
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = quoteField(f)
		}
		rows = append(rows, strings.Join(quoted, ","))
	}
	return []byte(strings.Join(rows, "\n"))
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
