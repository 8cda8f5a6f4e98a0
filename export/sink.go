package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Fixed by the downstream consumer contract.
const (
	ArtifactName        = "snap_export.csv"
	ArtifactContentType = "text/csv"
)

// Artifact is the serialised output delivered to a sink, exactly once per
// non-cancelled run.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Sink persists the final artifact. Implementations decide where a "saved
// file" lives: a directory on disk, a stream, an HTTP response body.
type Sink interface {
	Save(ctx context.Context, a Artifact) error
}

// FileSink writes artifacts into a directory, creating it if needed.
type FileSink struct {
	Dir string // empty = current directory
}

func (s FileSink) Save(_ context.Context, a Artifact) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: create output dir: %w", err)
	}
	path := filepath.Join(dir, a.Name)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

// WriterSink streams artifact bytes to an io.Writer, for piping the CSV to
// stdout or into another process.
type WriterSink struct {
	W io.Writer // nil = os.Stdout
}

func (s WriterSink) Save(_ context.Context, a Artifact) error {
	w := s.W
	if w == nil {
		w = os.Stdout
	}
	if _, err := w.Write(a.Data); err != nil {
		return fmt.Errorf("export: write artifact: %w", err)
	}
	return nil
}
