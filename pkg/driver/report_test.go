package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.yml")

	report := NewReport("tyflow")
	report.Files = append(report.Files,
		&FileReport{
			Path: "b.js",
			Bindings: []BindingSummary{
				{Name: "z", Type: "number"},
				{Name: "a", Type: `"off" | "on"`},
			},
			Findings: []Finding{
				{Severity: "warning", Message: `unresolved name "foo"`, Line: 3, Column: 5, EndLine: 3, EndColumn: 8},
			},
		},
		&FileReport{Path: "a.js", Bindings: []BindingSummary{}, Findings: []Finding{}},
	)

	if err := WriteReport(report, path); err != nil {
		t.Fatalf("WriteReport returned error: %v", err)
	}
	loaded, err := LoadReport(path)
	if err != nil {
		t.Fatalf("LoadReport returned error: %v", err)
	}

	if loaded.Tool != "tyflow" {
		t.Fatalf("Tool = %q, want tyflow", loaded.Tool)
	}
	if loaded.Generated == "" {
		t.Fatal("Generated timestamp missing after round trip")
	}
	if len(loaded.Files) != 2 || loaded.Files[0].Path != "a.js" || loaded.Files[1].Path != "b.js" {
		t.Fatalf("files not sorted by path: %#v", reportPaths(loaded))
	}
	bindings := loaded.Files[1].Bindings
	if len(bindings) != 2 || bindings[0].Name != "a" || bindings[1].Name != "z" {
		t.Fatalf("bindings not sorted by name: %#v", bindings)
	}
	if bindings[0].Type != `"off" | "on"` {
		t.Fatalf("binding type text mismatch: %q", bindings[0].Type)
	}
	if len(loaded.Files[1].Findings) != 1 {
		t.Fatalf("findings lost in round trip: %#v", loaded.Files[1].Findings)
	}
	finding := loaded.Files[1].Findings[0]
	if finding.Severity != "warning" || finding.Line != 3 || finding.Column != 5 || finding.EndColumn != 8 {
		t.Fatalf("finding round trip mismatch: %#v", finding)
	}
}

func TestReportCounts(t *testing.T) {
	report := NewReport("tyflow")
	report.Files = append(report.Files, &FileReport{
		Path: "x.js",
		Findings: []Finding{
			{Severity: "error", Message: "parser: syntax error"},
			{Severity: "warning", Message: "first"},
			{Severity: "warning", Message: "second"},
			{Severity: "info", Message: "note"},
		},
	})

	errs, warns, infos := report.Counts()
	if errs != 1 || warns != 2 || infos != 1 {
		t.Fatalf("Counts = %d/%d/%d, want 1/2/1", errs, warns, infos)
	}
	if !report.HasErrors() {
		t.Fatal("HasErrors should be true with an error finding")
	}
	if (&Report{}).HasErrors() {
		t.Fatal("empty report should have no errors")
	}
}

func TestLoadReportRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.yml")
	contents := strings.Join([]string{
		"generated: 2026-01-02T03:04:05Z",
		"tool: tyflow",
		"files:",
		"  - path: x.js",
		"    extra: 1",
		"    bindings: []",
		"    findings: []",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write report: %v", err)
	}

	_, err := LoadReport(path)
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
	if !strings.Contains(err.Error(), "extra") {
		t.Fatalf("error should name the unknown field, got %v", err)
	}
}

func reportPaths(report *Report) []string {
	paths := make([]string, 0, len(report.Files))
	for _, file := range report.Files {
		paths = append(paths, file.Path)
	}
	return paths
}
