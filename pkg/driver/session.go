package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tyflow/analyzer-go/pkg/analyzer"
	"tyflow/analyzer-go/pkg/ast"
	"tyflow/analyzer-go/pkg/parser"
	"tyflow/analyzer-go/pkg/ty"
)

// sourceExtensions are the suffixes the walker treats as JavaScript.
var sourceExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
}

// Session runs the analyzer over the files a config selects. One session
// owns one parser; every file still gets a fresh arena and analyzer so no
// types leak between files.
type Session struct {
	config *Config
	parser *parser.Parser
	logger *slog.Logger
}

// NewSession builds a session around cfg. A nil cfg uses the defaults; a
// nil logger discards.
func NewSession(cfg *Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p, err := parser.New()
	if err != nil {
		return nil, err
	}
	return &Session{config: cfg, parser: p, logger: logger}, nil
}

// Close releases parser resources.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.parser != nil {
		s.parser.Close()
		s.parser = nil
	}
}

// Run analyzes every file the given roots contain and returns the
// aggregated report. With no roots the config's roots apply. A root
// naming a file directly is analyzed regardless of globs.
func (s *Session) Run(roots ...string) (*Report, error) {
	if s == nil || s.parser == nil {
		return nil, fmt.Errorf("driver: session closed")
	}
	if len(roots) == 0 {
		roots = s.config.Roots
	}
	files, err := s.collectFiles(roots)
	if err != nil {
		return nil, err
	}
	report := NewReport("tyflow")
	for _, path := range files {
		s.logger.Info("analyze", "path", path)
		fileReport, err := s.AnalyzeFile(path)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, fileReport)
	}
	report.normalize()
	errCount, warnCount, _ := report.Counts()
	s.logger.Info("session done",
		"files", len(report.Files), "errors", errCount, "warnings", warnCount)
	return report, nil
}

// collectFiles resolves every root and gathers the matching source files
// in sorted order, deduplicated across overlapping roots.
func (s *Session) collectFiles(roots []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range roots {
		if root == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("driver: resolve root %q: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("driver: stat root %s: %w", abs, err)
		}
		if !info.IsDir() {
			add(abs)
			continue
		}
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				// node_modules and hidden directories are pruned before the
				// globs run; exclude patterns cover everything else.
				if name := d.Name(); path != abs &&
					(name == "node_modules" || strings.HasPrefix(name, ".")) {
					return fs.SkipDir
				}
				return nil
			}
			if !sourceExtensions[filepath.Ext(path)] {
				return nil
			}
			rel, err := filepath.Rel(abs, path)
			if err != nil {
				return fmt.Errorf("driver: relativize %s: %w", path, err)
			}
			if !s.config.Selects(rel) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("driver: traverse %s: %w", abs, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeFile parses and analyzes one file. Parse failures do not abort
// the session; they surface as an error finding on the file's report.
func (s *Session) AnalyzeFile(path string) (*FileReport, error) {
	if s == nil || s.parser == nil {
		return nil, fmt.Errorf("driver: session closed")
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: read %s: %w", path, err)
	}

	fileReport := &FileReport{
		Path:     path,
		Bindings: []BindingSummary{},
		Findings: []Finding{},
	}
	program, err := s.parser.ParseProgram(path, source)
	if err != nil {
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			s.logger.Warn("parse failed",
				"path", path, "line", parseErr.Location.Line, "message", parseErr.Message)
			fileReport.Findings = append(fileReport.Findings, Finding{
				Severity:  analyzer.SeverityError.String(),
				Message:   parseErr.Message,
				Line:      parseErr.Location.Line,
				Column:    parseErr.Location.Column,
				EndLine:   parseErr.Location.EndLine,
				EndColumn: parseErr.Location.EndColumn,
			})
			return fileReport, nil
		}
		return nil, fmt.Errorf("driver: parse %s: %w", path, err)
	}

	arena := ty.NewArena()
	an := analyzer.New(arena)
	an.SetLogger(s.logger)
	SeedHostGlobals(an)
	for _, name := range s.config.Globals {
		an.DefineGlobal(name, ty.Unknown)
	}
	an.ExecProgram(program)

	bindings := an.BindingTypes()
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rendered := ast.RenderType(an.PrintType(bindings[name]))
		fileReport.Bindings = append(fileReport.Bindings, BindingSummary{Name: name, Type: rendered})
	}
	for _, d := range an.Diagnostics() {
		fileReport.Findings = append(fileReport.Findings, findingFrom(d))
	}
	s.logger.Debug("file analyzed", "path", path,
		"bindings", len(fileReport.Bindings), "findings", len(fileReport.Findings),
		"nodes", arena.Count())
	return fileReport, nil
}

func findingFrom(d analyzer.Diagnostic) Finding {
	finding := Finding{Severity: d.Severity.String(), Message: d.Message}
	if d.Node != nil {
		span := d.Node.Span()
		finding.Line = span.Start.Line
		finding.Column = span.Start.Column
		finding.EndLine = span.End.Line
		finding.EndColumn = span.End.Column
	}
	return finding
}
