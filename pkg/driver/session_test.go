package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestSession(t *testing.T, cfg *Config) *Session {
	t.Helper()
	session, err := NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	t.Cleanup(session.Close)
	return session
}

func writeSource(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func bindingType(t *testing.T, fileReport *FileReport, name string) string {
	t.Helper()
	for _, b := range fileReport.Bindings {
		if b.Name == name {
			return b.Type
		}
	}
	t.Fatalf("binding %q missing: %#v", name, fileReport.Bindings)
	return ""
}

func TestAnalyzeFileBindingSummaries(t *testing.T) {
	session := newTestSession(t, nil)
	path := writeSource(t, t.TempDir(), "main.js", strings.Join([]string{
		`let mode = "idle";`,
		`let flag = true;`,
		`if (flag) {`,
		`  mode = "busy";`,
		`}`,
		`let count = Math.floor(2.5);`,
		`let stamp = new Date().getTime();`,
	}, "\n")+"\n")

	fileReport, err := session.AnalyzeFile(path)
	if err != nil {
		t.Fatalf("AnalyzeFile returned error: %v", err)
	}
	if len(fileReport.Findings) != 0 {
		t.Fatalf("unexpected findings: %#v", fileReport.Findings)
	}
	if got := bindingType(t, fileReport, "mode"); got != `"busy" | "idle"` {
		t.Fatalf(`mode = %s, want "busy" | "idle"`, got)
	}
	if got := bindingType(t, fileReport, "flag"); got != "true" {
		t.Fatalf("flag = %s, want true", got)
	}
	if got := bindingType(t, fileReport, "count"); got != "number" {
		t.Fatalf("count = %s, want number", got)
	}
	if got := bindingType(t, fileReport, "stamp"); got != "number" {
		t.Fatalf("stamp = %s, want number", got)
	}
}

func TestAnalyzeFileSeedsHostGlobals(t *testing.T) {
	session := newTestSession(t, nil)
	path := writeSource(t, t.TempDir(), "host.js", strings.Join([]string{
		`console.log("starting");`,
		`let label = unknownThing;`,
	}, "\n")+"\n")

	fileReport, err := session.AnalyzeFile(path)
	if err != nil {
		t.Fatalf("AnalyzeFile returned error: %v", err)
	}
	if len(fileReport.Findings) != 1 {
		t.Fatalf("findings = %#v, want exactly the unresolved warning", fileReport.Findings)
	}
	finding := fileReport.Findings[0]
	if finding.Severity != "warning" || !strings.Contains(finding.Message, `unresolved name "unknownThing"`) {
		t.Fatalf("unexpected finding: %#v", finding)
	}
	if finding.Line != 2 {
		t.Fatalf("finding line = %d, want 2", finding.Line)
	}
	if got := bindingType(t, fileReport, "label"); got != "unknownThing" {
		t.Fatalf("label = %q, want the placeholder name", got)
	}
}

func TestAnalyzeFileParseErrorBecomesFinding(t *testing.T) {
	session := newTestSession(t, nil)
	path := writeSource(t, t.TempDir(), "broken.js", "let x = ;\n")

	fileReport, err := session.AnalyzeFile(path)
	if err != nil {
		t.Fatalf("AnalyzeFile should not fail on a syntax error: %v", err)
	}
	if len(fileReport.Findings) != 1 {
		t.Fatalf("findings = %#v, want exactly the parse error", fileReport.Findings)
	}
	finding := fileReport.Findings[0]
	if finding.Severity != "error" {
		t.Fatalf("severity = %q, want error", finding.Severity)
	}
	if !strings.HasPrefix(finding.Message, "parser: syntax error") {
		t.Fatalf("message = %q, want a parser syntax error", finding.Message)
	}
	if finding.Line != 1 {
		t.Fatalf("finding line = %d, want 1", finding.Line)
	}
	if len(fileReport.Bindings) != 0 {
		t.Fatalf("bindings should be empty for an unparsed file: %#v", fileReport.Bindings)
	}
}

func TestAnalyzeFileConfiguredGlobals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Globals = []string{"process"}
	session := newTestSession(t, cfg)
	path := writeSource(t, t.TempDir(), "env.js", "let env = process;\n")

	fileReport, err := session.AnalyzeFile(path)
	if err != nil {
		t.Fatalf("AnalyzeFile returned error: %v", err)
	}
	if len(fileReport.Findings) != 0 {
		t.Fatalf("configured global should resolve silently: %#v", fileReport.Findings)
	}
	if got := bindingType(t, fileReport, "env"); got != "unknown" {
		t.Fatalf("env = %q, want unknown", got)
	}
}

func TestRunWalksAndFilters(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "src/app.js", "let a = 1;\n")
	writeSource(t, dir, "src/util.mjs", "let b = 2;\n")
	writeSource(t, dir, "src/notes.txt", "not javascript\n")
	writeSource(t, dir, "src/skip.test.js", "let d = 4;\n")
	writeSource(t, dir, "node_modules/dep/index.js", "let c = 3;\n")
	writeSource(t, dir, ".cache/stale.js", "let e = 5;\n")

	cfg := DefaultConfig()
	cfg.Exclude = append(cfg.Exclude, "**/*.test.js")
	session := newTestSession(t, cfg)

	report, err := session.Run(dir)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(report.Files) != 2 {
		t.Fatalf("report has %d files, want 2: %v", len(report.Files), reportPaths(report))
	}
	if base := filepath.Base(report.Files[0].Path); base != "app.js" {
		t.Fatalf("first file = %s, want app.js", base)
	}
	if base := filepath.Base(report.Files[1].Path); base != "util.mjs" {
		t.Fatalf("second file = %s, want util.mjs", base)
	}
	if got := bindingType(t, report.Files[0], "a"); got != "1" {
		t.Fatalf("a = %q, want 1", got)
	}
}

func TestRunSingleFileRoot(t *testing.T) {
	session := newTestSession(t, nil)
	path := writeSource(t, t.TempDir(), "one.js", "const tag = `v1`;\n")

	report, err := session.Run(path)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(report.Files) != 1 {
		t.Fatalf("report has %d files, want 1", len(report.Files))
	}
	if got := bindingType(t, report.Files[0], "tag"); got != `"v1"` {
		t.Fatalf(`tag = %s, want "v1"`, got)
	}
}

func TestSessionClosed(t *testing.T) {
	session, err := NewSession(nil, nil)
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	session.Close()

	if _, err := session.AnalyzeFile("x.js"); err == nil || !strings.Contains(err.Error(), "session closed") {
		t.Fatalf("expected closed-session error, got %v", err)
	}
	if _, err := session.Run(); err == nil || !strings.Contains(err.Error(), "session closed") {
		t.Fatalf("expected closed-session error from Run, got %v", err)
	}
}
