package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"tyflow/analyzer-go/pkg/driver"
)

type checkOptions struct {
	configPath string
	repo       string
	report     string
	logLevel   string
	roots      []string
}

func parseCheckArgs(args []string) (*checkOptions, error) {
	opts := &checkOptions{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, inline := arg, "", false
		if eq := strings.IndexByte(arg, '='); eq >= 0 && strings.HasPrefix(arg, "--") {
			name, value, inline = arg[:eq], arg[eq+1:], true
		}
		switch name {
		case "--config", "--repo", "--report", "--log-level":
			if !inline {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("%s expects a value", name)
				}
				value = args[i+1]
				i++
			}
			switch name {
			case "--config":
				opts.configPath = value
			case "--repo":
				opts.repo = value
			case "--report":
				opts.report = value
			case "--log-level":
				opts.logLevel = value
			}
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("unknown flag %s", arg)
			}
			opts.roots = append(opts.roots, arg)
		}
	}
	return opts, nil
}

// resolveConfig loads the explicit config, or the nearest tyflow.yml, or
// the defaults, then applies command-line overrides on top.
func resolveConfig(opts *checkOptions) (*driver.Config, error) {
	var cfg *driver.Config
	switch {
	case opts.configPath != "":
		loaded, err := driver.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		found, err := driver.FindConfig(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			cfg = driver.DefaultConfig()
		} else {
			loaded, err := driver.LoadConfig(found)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}
	if opts.report != "" {
		cfg.Report = opts.report
	}
	if opts.logLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
			return nil, fmt.Errorf("unknown log level %q", opts.logLevel)
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runCheck(args []string) int {
	opts, err := parseCheckArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg, err := resolveConfig(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg.LogLevel)

	roots := append([]string{}, opts.roots...)
	if opts.repo != "" {
		cacheDir, err := defaultCacheDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		dir, err := fetchRepo(opts.repo, cacheDir, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch %s: %v\n", opts.repo, err)
			return 1
		}
		roots = append(roots, dir)
	}

	session, err := driver.NewSession(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer session.Close()

	report, err := session.Run(roots...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	printFindings(os.Stdout, report)
	if cfg.Report != "" {
		if err := driver.WriteReport(report, cfg.Report); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		logger.Info("report written", "path", cfg.Report)
	}
	if report.HasErrors() {
		return 1
	}
	return 0
}

func printFindings(w io.Writer, report *driver.Report) {
	for _, file := range report.Files {
		for _, finding := range file.Findings {
			fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
				file.Path, finding.Line, finding.Column, finding.Severity, finding.Message)
		}
	}
	errs, warns, _ := report.Counts()
	fmt.Fprintf(w, "checked %d file(s): %d error(s), %d warning(s)\n",
		len(report.Files), errs, warns)
}
