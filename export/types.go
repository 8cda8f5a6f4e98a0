// Package export implements the extraction-and-confirmation pipeline: rows
// from a parsed export table are validated into records, run through an
// interactive accept/abort/auto workflow, and the accepted records are
// serialised to the snap_export.csv artifact the SnapDown batch downloader
// consumes.
package export

// Record is one validated download-link entry. All fields are stored
// verbatim as extracted text; nothing is converted to numeric form. A
// Record exists only for a row that passed all validation stages.
type Record struct {
	Timestamp   string
	Format      string
	Latitude    string
	Longitude   string
	DownloadURL string
}

// Mode is the confirmation mode of a run.
type Mode int

const (
	// ModePrompt asks the operator about every record.
	ModePrompt Mode = iota
	// ModeAuto bulk-accepts records. Reached from ModePrompt at most once
	// per run and never left.
	ModeAuto
)

// Decision is the operator's answer to a confirmation.
type Decision int

const (
	// DecisionAccept takes this record and keeps prompting.
	DecisionAccept Decision = iota
	// DecisionAbort terminates the run; nothing accumulated is emitted.
	DecisionAbort
	// DecisionAcceptAll takes this record and switches to ModeAuto.
	DecisionAcceptAll
)

// Result summarises a completed run.
type Result struct {
	Total     int  // data rows seen
	Accepted  int  // records accepted
	Failed    int  // rows rejected by the parser
	Cancelled bool // operator aborted; no artifact was written
	Records   []Record
}

// state is the per-run extraction state: created at pipeline start, mutated
// once per row, discarded at pipeline end.
type state struct {
	mode      Mode
	processed int // accepted records only
	failed    int // parser-rejected rows only, never operator aborts
	total     int
}
