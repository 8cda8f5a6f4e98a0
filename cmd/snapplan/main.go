// Command snapplan previews what the SnapDown batch downloader will do with
// an exported snap_export.csv: one line per record with the derived target
// filename, marking entries the downloader would skip because the file is
// already present in the destination directory.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/snapdown/snapexport/plan"
)

func main() {
	csvPath := flag.String("csv", "snap_export.csv", "exported csv to read")
	destDir := flag.String("dir", "snapdown_output", "downloader destination directory")
	flag.Parse()

	if err := run(*csvPath, *destDir); err != nil {
		fmt.Fprintln(os.Stderr, "snapplan:", err)
		os.Exit(1)
	}
}

func run(csvPath, destDir string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := plan.ReadCSV(f)
	if err != nil {
		return err
	}

	items := plan.Build(records, destDir)
	var pending int
	for _, it := range items {
		mark := "get "
		if it.Exists {
			mark = "skip"
		} else {
			pending++
		}
		fmt.Printf("%s  %s  %s\n", mark, it.Filename, it.Record.DownloadURL)
	}
	fmt.Printf("%d records, %d to fetch, %d already present\n",
		len(items), pending, len(items)-pending)
	return nil
}
