package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCheckArgs(t *testing.T) {
	opts, err := parseCheckArgs([]string{
		"--config", "conf/tyflow.yml",
		"--repo=https://example.com/app.git@v1.2",
		"--report", "out.yml",
		"--log-level=debug",
		"src", "extra.js",
	})
	if err != nil {
		t.Fatalf("parseCheckArgs returned error: %v", err)
	}
	if opts.configPath != "conf/tyflow.yml" {
		t.Fatalf("configPath = %q, want conf/tyflow.yml", opts.configPath)
	}
	if opts.repo != "https://example.com/app.git@v1.2" {
		t.Fatalf("repo = %q", opts.repo)
	}
	if opts.report != "out.yml" {
		t.Fatalf("report = %q, want out.yml", opts.report)
	}
	if opts.logLevel != "debug" {
		t.Fatalf("logLevel = %q, want debug", opts.logLevel)
	}
	if got := strings.Join(opts.roots, ","); got != "src,extra.js" {
		t.Fatalf("roots = %q, want src,extra.js", got)
	}
}

func TestParseCheckArgsErrors(t *testing.T) {
	_, err := parseCheckArgs([]string{"--config"})
	if err == nil || !strings.Contains(err.Error(), "--config expects a value") {
		t.Fatalf("expected missing-value error, got %v", err)
	}
	_, err = parseCheckArgs([]string{"--watch"})
	if err == nil || !strings.Contains(err.Error(), "unknown flag --watch") {
		t.Fatalf("expected unknown-flag error, got %v", err)
	}
}

func TestResolveConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tyflow.yml")
	if err := os.WriteFile(path, []byte("report: from-config.yml\nlog_level: warn\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	opts := &checkOptions{configPath: path, report: "cli.yml", logLevel: "error"}
	cfg, err := resolveConfig(opts)
	if err != nil {
		t.Fatalf("resolveConfig returned error: %v", err)
	}
	if cfg.Report != "cli.yml" {
		t.Fatalf("Report = %q, want the command-line override", cfg.Report)
	}
	if cfg.LogLevel != slog.LevelError {
		t.Fatalf("LogLevel = %v, want error", cfg.LogLevel)
	}
}

func TestSplitRepoSpec(t *testing.T) {
	cases := []struct {
		spec string
		url  string
		rev  string
	}{
		{"https://example.com/owner/app.git", "https://example.com/owner/app.git", ""},
		{"https://example.com/owner/app.git@v1.2.0", "https://example.com/owner/app.git", "v1.2.0"},
		{"https://example.com/owner/app.git@4f2c1aa", "https://example.com/owner/app.git", "4f2c1aa"},
		{"git@example.com:owner/app.git", "git@example.com:owner/app.git", ""},
		{"git@example.com:owner/app.git@main", "git@example.com:owner/app.git", "main"},
	}
	for _, tc := range cases {
		url, rev := splitRepoSpec(tc.spec)
		if url != tc.url || rev != tc.rev {
			t.Fatalf("splitRepoSpec(%q) = %q, %q; want %q, %q", tc.spec, url, rev, tc.url, tc.rev)
		}
	}
}

func TestCacheSegment(t *testing.T) {
	if got := cacheSegment("https://example.com/owner/app.git"); got != "https___example.com_owner_app.git" {
		t.Fatalf("cacheSegment = %q", got)
	}
	if got := cacheSegment(""); got != "repo" {
		t.Fatalf("cacheSegment empty = %q, want repo", got)
	}
}
