package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file LoadConfig and FindConfig look for.
const ConfigFileName = "tyflow.yml"

// Config controls which files a session analyzes and where its report
// lands. The zero value is not usable; start from DefaultConfig or
// LoadConfig.
type Config struct {
	Path     string // absolute path of the loaded file, "" for built-in defaults
	Roots    []string
	Include  []string
	Exclude  []string
	Globals  []string
	Report   string
	LogLevel slog.Level
}

// DefaultConfig returns the configuration used when no tyflow.yml exists.
func DefaultConfig() *Config {
	return &Config{
		Roots:    []string{"."},
		Include:  []string{},
		Exclude:  []string{"**/node_modules/**"},
		Globals:  []string{},
		Report:   "tyflow-report.yml",
		LogLevel: slog.LevelInfo,
	}
}

// LoadConfig reads a tyflow.yml. Unknown keys are rejected; absent keys
// keep their defaults. An empty file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw configDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}

	cfg, err := raw.toConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	cfg.Path = abs
	return cfg, nil
}

// FindConfig walks from dir toward the filesystem root looking for
// tyflow.yml. It returns "" when no config file exists on the way up.
func FindConfig(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(abs, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			break
		}
		abs = parent
	}
	return "", nil
}

// Selects reports whether a file at rel, relative to the walked root,
// survives the include and exclude globs. Exclusion wins; an empty
// include list admits everything.
func (c *Config) Selects(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	if len(c.Include) == 0 {
		return true
	}
	for _, pattern := range c.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

type configDisk struct {
	Roots    []string `yaml:"roots"`
	Include  []string `yaml:"include"`
	Exclude  []string `yaml:"exclude"`
	Globals  []string `yaml:"globals"`
	Report   string   `yaml:"report"`
	LogLevel string   `yaml:"log_level"`
}

func (d configDisk) toConfig() (*Config, error) {
	cfg := DefaultConfig()
	if d.Roots != nil {
		cfg.Roots = compactList(d.Roots)
	}
	if d.Include != nil {
		cfg.Include = compactList(d.Include)
	}
	if d.Exclude != nil {
		cfg.Exclude = compactList(d.Exclude)
	}
	if d.Globals != nil {
		cfg.Globals = compactList(d.Globals)
	}
	if report := strings.TrimSpace(d.Report); report != "" {
		cfg.Report = report
	}
	if name := strings.TrimSpace(d.LogLevel); name != "" {
		level, err := parseLogLevel(name)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}
	if len(cfg.Roots) == 0 {
		cfg.Roots = []string{"."}
	}
	// Broken globs fail here, not halfway through a walk.
	for _, pattern := range cfg.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern %q", pattern)
		}
	}
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return cfg, nil
}

func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

func compactList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, entry := range in {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}
