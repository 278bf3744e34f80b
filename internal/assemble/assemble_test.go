package assemble

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/outliner/internal/outline"
)

func sampleOutline() *outline.Outline {
	return &outline.Outline{
		Title: "Annual Report",
		Headings: []outline.Heading{
			{Level: outline.LevelH1, Text: "1. Introduction", Page: 1},
			{Level: outline.LevelH2, Text: "1.1 Background", Page: 1},
			{Level: outline.LevelH1, Text: "2. Results", Page: 3},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"text", FormatText, false},
		{"txt", FormatText, false},
		{"yaml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleOutline(), FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Title   string `json:"title"`
		Outline []struct {
			Level string `json:"level"`
			Text  string `json:"text"`
			Page  int    `json:"page"`
		} `json:"outline"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if decoded.Title != "Annual Report" {
		t.Errorf("expected title %q, got %q", "Annual Report", decoded.Title)
	}
	if len(decoded.Outline) != 3 {
		t.Fatalf("expected 3 outline entries, got %d", len(decoded.Outline))
	}
	if decoded.Outline[0].Level != "H1" || decoded.Outline[1].Level != "H2" {
		t.Errorf("levels not serialized as names: %q, %q",
			decoded.Outline[0].Level, decoded.Outline[1].Level)
	}
	if decoded.Outline[2].Page != 3 {
		t.Errorf("expected page 3, got %d", decoded.Outline[2].Page)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleOutline(), FormatCSV); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + title + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "level,text,page" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "TITLE,") {
		t.Errorf("expected title row, got %q", lines[1])
	}
	if lines[2] != "H1,1. Introduction,1" {
		t.Errorf("unexpected first heading row: %q", lines[2])
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleOutline(), FormatText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "Annual Report" {
		t.Errorf("expected title line, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1. Introduction") {
		t.Errorf("expected unindented H1, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "  1.1 Background") {
		t.Errorf("expected indented H2, got %q", lines[2])
	}
	if !strings.Contains(lines[2], "(p.1)") {
		t.Errorf("expected page marker, got %q", lines[2])
	}
}

func TestWriteTextNoTitle(t *testing.T) {
	o := &outline.Outline{Headings: []outline.Heading{
		{Level: outline.LevelH1, Text: "Only Heading", Page: 1},
	}}
	var buf bytes.Buffer
	if err := Write(&buf, o, FormatText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.HasPrefix(buf.String(), "\n") {
		t.Errorf("empty title should not leave a blank first line: %q", buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	outPath, err := WriteFile(dir, "/some/input/report.pdf", sampleOutline(), FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(outPath) != "report.outline.json" {
		t.Errorf("unexpected output name: %s", filepath.Base(outPath))
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "Annual Report") {
		t.Errorf("output file missing title: %s", data)
	}
}

func TestFormatExtension(t *testing.T) {
	if FormatJSON.Extension() != ".outline.json" {
		t.Errorf("json extension: %s", FormatJSON.Extension())
	}
	if FormatCSV.Extension() != ".outline.csv" {
		t.Errorf("csv extension: %s", FormatCSV.Extension())
	}
	if FormatText.Extension() != ".outline.txt" {
		t.Errorf("text extension: %s", FormatText.Extension())
	}
}
