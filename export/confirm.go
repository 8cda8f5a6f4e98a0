package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirmation is what the operator sees before deciding on a record.
type Confirmation struct {
	Index  int // 0-based row index
	Total  int // total data rows in the table
	Record Record
}

// Confirmer blocks until the operator decides what to do with a record.
// It is the pipeline's only suspension point.
type Confirmer interface {
	Confirm(ctx context.Context, c Confirmation) (Decision, error)
}

// TermConfirmer prompts on a terminal. Empty input accepts the record,
// "a"/"auto" accepts it and switches the run to bulk mode, "c"/"cancel"/"q"
// aborts. Anything else reprompts. EOF on the input aborts: with nobody
// left to answer, the review gate stays closed.
type TermConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTermConfirmer creates a TermConfirmer. Nil in/out default to
// stdin/stdout.
func NewTermConfirmer(in io.Reader, out io.Writer) *TermConfirmer {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &TermConfirmer{in: bufio.NewReader(in), out: out}
}

func (t *TermConfirmer) Confirm(ctx context.Context, c Confirmation) (Decision, error) {
	for {
		if err := ctx.Err(); err != nil {
			return DecisionAbort, err
		}

		fmt.Fprintf(t.out, "row %d/%d\n", c.Index+1, c.Total)
		fmt.Fprintf(t.out, "  timestamp: %s\n", c.Record.Timestamp)
		fmt.Fprintf(t.out, "  format:    %s\n", c.Record.Format)
		fmt.Fprintf(t.out, "  latitude:  %s\n", c.Record.Latitude)
		fmt.Fprintf(t.out, "  longitude: %s\n", c.Record.Longitude)
		fmt.Fprintf(t.out, "  url:       %s\n", c.Record.DownloadURL)
		fmt.Fprint(t.out, "[enter] accept  [a]uto-accept rest  [c]ancel run: ")

		line, err := t.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if err != nil {
			if err == io.EOF && answer != "" {
				// Last line without trailing newline still counts.
			} else if err == io.EOF {
				return DecisionAbort, nil
			} else {
				return DecisionAbort, fmt.Errorf("export: read answer: %w", err)
			}
		}

		switch answer {
		case "":
			return DecisionAccept, nil
		case "a", "auto":
			return DecisionAcceptAll, nil
		case "c", "cancel", "q":
			return DecisionAbort, nil
		default:
			fmt.Fprintf(t.out, "unrecognised answer %q\n", answer)
		}
	}
}

// AutoConfirmer preselects bulk acceptance from the first record on. Meant
// for headless runs where no operator is attached; downstream behaviour is
// identical to an operator answering "auto" at row zero.
type AutoConfirmer struct{}

func (AutoConfirmer) Confirm(ctx context.Context, _ Confirmation) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return DecisionAbort, err
	}
	return DecisionAcceptAll, nil
}
