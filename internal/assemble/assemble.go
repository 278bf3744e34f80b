// Package assemble renders extracted outlines into their output
// representations and writes batch results to disk.
package assemble

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/outliner/internal/outline"
)

// Format names an output representation.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// ParseFormat validates a format name from a CLI flag or query param.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatText, "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format: %q", s)
}

// Extension returns the file extension for batch output files.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".outline.csv"
	case FormatText:
		return ".outline.txt"
	}
	return ".outline.json"
}

// Write renders the outline in the given format.
func Write(w io.Writer, o *outline.Outline, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, o)
	case FormatCSV:
		return writeCSV(w, o)
	case FormatText:
		return writeText(w, o)
	}
	return fmt.Errorf("unknown output format: %q", format)
}

// WriteFile renders the outline for one input document next to outPath.
// The output name is the input stem plus the format extension.
func WriteFile(outDir, inputPath string, o *outline.Outline, format Format) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outPath := filepath.Join(outDir, stem+format.Extension())

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	if err := Write(f, o, format); err != nil {
		f.Close()
		return "", fmt.Errorf("write outline: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close output file: %w", err)
	}
	return outPath, nil
}

func writeJSON(w io.Writer, o *outline.Outline) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}

func writeCSV(w io.Writer, o *outline.Outline) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"level", "text", "page"}); err != nil {
		return err
	}
	if o.Title != "" {
		if err := cw.Write([]string{"TITLE", o.Title, ""}); err != nil {
			return err
		}
	}
	for _, h := range o.Headings {
		row := []string{h.Level.String(), h.Text, strconv.Itoa(h.Page)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeText renders an indented outline, two spaces per nesting level.
func writeText(w io.Writer, o *outline.Outline) error {
	var buf strings.Builder
	if o.Title != "" {
		buf.WriteString(o.Title)
		buf.WriteByte('\n')
	}
	for _, h := range o.Headings {
		depth := h.Level.Depth()
		if depth < 1 {
			depth = 1
		}
		buf.WriteString(strings.Repeat("  ", depth-1))
		buf.WriteString(h.Text)
		buf.WriteString(fmt.Sprintf("  (p.%d)\n", h.Page))
	}
	_, err := io.WriteString(w, buf.String())
	return err
}
