package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

func defaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "tyflow", "repos"), nil
}

// splitRepoSpec splits "url@rev" into its parts. The rev is anything after
// an '@' that follows the last path separator, so ssh URLs like
// git@host:owner/repo pass through untouched. A rev may be a tag, branch,
// or commit hash; slashes inside the rev are not supported.
func splitRepoSpec(spec string) (url, rev string) {
	spec = strings.TrimSpace(spec)
	at := strings.LastIndexByte(spec, '@')
	if at > strings.LastIndexByte(spec, '/') && at > 0 {
		return spec[:at], spec[at+1:]
	}
	return spec, ""
}

// fetchRepo clones the repository into the cache and checks out the
// requested revision. Cached checkouts are reused as-is.
func fetchRepo(spec, cacheRoot string, logger *slog.Logger) (string, error) {
	url, rev := splitRepoSpec(spec)
	if url == "" {
		return "", fmt.Errorf("empty repository URL")
	}
	revLabel := rev
	if revLabel == "" {
		revLabel = "head"
	}
	target := filepath.Join(cacheRoot, cacheSegment(url), cacheSegment(revLabel))
	if _, err := os.Stat(target); err == nil {
		logger.Debug("repo cached", "url", url, "dir", target)
		return target, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	tmpDir, err := os.MkdirTemp(filepath.Dir(target), "clone-*")
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", err
	}

	logger.Info("cloning", "url", url, "rev", revLabel)
	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git clone %s: %w", url, err)
	}

	if rev != "" {
		hash, err := repo.ResolveRevision(plumbing.Revision(rev))
		if err != nil {
			_ = os.RemoveAll(tmpDir)
			return "", fmt.Errorf("resolve revision %s: %w", rev, err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			_ = os.RemoveAll(tmpDir)
			return "", err
		}
		if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
			_ = os.RemoveAll(tmpDir)
			return "", fmt.Errorf("git checkout %s: %w", rev, err)
		}
	}

	if err := os.Rename(tmpDir, target); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	return target, nil
}

// cacheSegment maps an arbitrary identifier onto a safe directory name.
func cacheSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "repo"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	result := b.String()
	if result == "" {
		return "repo"
	}
	return result
}
