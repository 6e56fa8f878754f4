package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/voxelsplace/voxedit/api"
	"github.com/voxelsplace/voxedit/journal"
)

// RunRecords2GLB converts a clipboard JSON file to a binary glTF file.
// Malformed records are skipped and counted.
func RunRecords2GLB(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	glb, rep, err := api.RecordsToGLB(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, glb, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Printf(".glb saved to %s (%d bytes, %s)\n", outPath, len(glb), rep)
	return nil
}

// RunDigest prints the content digest of a clipboard JSON file.
func RunDigest(inPath string, out io.Writer) (uint64, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return 0, err
	}
	sum, rep, err := api.RecordsDigest(data)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(out, "%016x  %s (%s)\n", sum, inPath, rep)
	for _, e := range rep.Errors {
		fmt.Fprintf(out, "  %v\n", e)
	}
	return sum, nil
}

// RunJournalDump prints every entry of an edit journal, one per line.
func RunJournalDump(path string, out io.Writer) error {
	entries, err := journal.Read(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		ch, err := e.Change()
		if err != nil {
			return err
		}
		switch {
		case e.Color != "":
			fmt.Fprintf(out, "%s %-7s %s %s\n", e.Time.Format("15:04:05.000"), ch.Op, ch.Coord, ch.Color)
		default:
			fmt.Fprintf(out, "%s %-7s count=%d\n", e.Time.Format("15:04:05.000"), ch.Op, ch.Count)
		}
	}
	return nil
}
