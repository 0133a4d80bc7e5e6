package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Report aggregates everything one session run produced.
type Report struct {
	Path      string
	Generated string
	Tool      string
	Files     []*FileReport
}

// FileReport carries the analysis results for a single source file.
type FileReport struct {
	Path     string
	Bindings []BindingSummary
	Findings []Finding
}

// BindingSummary pairs a top-level binding with the type text it settled
// into.
type BindingSummary struct {
	Name string
	Type string
}

// Finding is one diagnostic located in its source file. Parse failures
// and analyzer diagnostics both land here.
type Finding struct {
	Severity  string
	Message   string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// NewReport constructs a report with metadata seeded for the given tool.
func NewReport(tool string) *Report {
	return &Report{
		Generated: time.Now().UTC().Format(time.RFC3339),
		Tool:      strings.TrimSpace(tool),
		Files:     []*FileReport{},
	}
}

// Counts tallies findings by severity across every file.
func (r *Report) Counts() (errors, warnings, infos int) {
	for _, file := range r.Files {
		for _, finding := range file.Findings {
			switch finding.Severity {
			case "error":
				errors++
			case "warning":
				warnings++
			default:
				infos++
			}
		}
	}
	return errors, warnings, infos
}

// HasErrors reports whether any file carries an error-severity finding.
func (r *Report) HasErrors() bool {
	errors, _, _ := r.Counts()
	return errors > 0
}

// LoadReport parses a previously written report from disk.
func LoadReport(path string) (*Report, error) {
	if path == "" {
		return nil, fmt.Errorf("report: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("report: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw reportDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("report: parse %s: %w", abs, err)
	}

	report := raw.toReport()
	report.Path = abs
	report.normalize()
	return report, nil
}

// WriteReport serialises the report to disk, refreshing metadata.
func WriteReport(report *Report, path string) error {
	if report == nil {
		return fmt.Errorf("report: nil report")
	}
	if path == "" {
		if report.Path == "" {
			return fmt.Errorf("report: missing path")
		}
		path = report.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("report: resolve %s: %w", path, err)
	}

	if report.Generated == "" {
		report.Generated = time.Now().UTC().Format(time.RFC3339)
	}
	report.Path = abs
	report.normalize()

	data := report.toDisk()
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("report: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("report: encoder close: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", abs, err)
	}
	return nil
}

// normalize orders files by path and bindings by name. Findings keep
// their emission order; it follows the source top to bottom.
func (r *Report) normalize() {
	if r == nil {
		return
	}
	r.Tool = strings.TrimSpace(r.Tool)
	sort.SliceStable(r.Files, func(i, j int) bool {
		return r.Files[i].Path < r.Files[j].Path
	})
	for _, file := range r.Files {
		if file == nil {
			continue
		}
		sort.SliceStable(file.Bindings, func(i, j int) bool {
			return file.Bindings[i].Name < file.Bindings[j].Name
		})
	}
}

func (r *Report) toDisk() reportDisk {
	files := make([]fileDisk, 0, len(r.Files))
	for _, file := range r.Files {
		if file == nil {
			continue
		}
		bindings := make([]bindingDisk, 0, len(file.Bindings))
		for _, b := range file.Bindings {
			bindings = append(bindings, bindingDisk{Name: b.Name, Type: b.Type})
		}
		findings := make([]findingDisk, 0, len(file.Findings))
		for _, f := range file.Findings {
			findings = append(findings, findingDisk{
				Severity:  f.Severity,
				Message:   f.Message,
				Line:      f.Line,
				Column:    f.Column,
				EndLine:   f.EndLine,
				EndColumn: f.EndColumn,
			})
		}
		files = append(files, fileDisk{
			Path:     file.Path,
			Bindings: bindings,
			Findings: findings,
		})
	}
	return reportDisk{
		Generated: r.Generated,
		Tool:      r.Tool,
		Files:     files,
	}
}

type reportDisk struct {
	Generated string     `yaml:"generated"`
	Tool      string     `yaml:"tool"`
	Files     []fileDisk `yaml:"files"`
}

type fileDisk struct {
	Path     string        `yaml:"path"`
	Bindings []bindingDisk `yaml:"bindings"`
	Findings []findingDisk `yaml:"findings"`
}

type bindingDisk struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type findingDisk struct {
	Severity  string `yaml:"severity"`
	Message   string `yaml:"message"`
	Line      int    `yaml:"line"`
	Column    int    `yaml:"column"`
	EndLine   int    `yaml:"end_line"`
	EndColumn int    `yaml:"end_column"`
}

func (d reportDisk) toReport() *Report {
	report := &Report{
		Generated: strings.TrimSpace(d.Generated),
		Tool:      strings.TrimSpace(d.Tool),
		Files:     make([]*FileReport, 0, len(d.Files)),
	}
	for _, file := range d.Files {
		bindings := make([]BindingSummary, 0, len(file.Bindings))
		for _, b := range file.Bindings {
			bindings = append(bindings, BindingSummary{Name: b.Name, Type: b.Type})
		}
		findings := make([]Finding, 0, len(file.Findings))
		for _, f := range file.Findings {
			findings = append(findings, Finding{
				Severity:  f.Severity,
				Message:   f.Message,
				Line:      f.Line,
				Column:    f.Column,
				EndLine:   f.EndLine,
				EndColumn: f.EndColumn,
			})
		}
		report.Files = append(report.Files, &FileReport{
			Path:     file.Path,
			Bindings: bindings,
			Findings: findings,
		})
	}
	report.normalize()
	return report
}
