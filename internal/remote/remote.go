// Package remote resolves and fetches remote Git repositories so a
// scan can run against a local checkout. It accepts full HTTPS and SSH
// URLs plus the common provider shorthands.
package remote

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Provider identifies the hosting service a URL points at. It only
// affects how shorthands expand into clone URLs.
type Provider uint8

const (
	GitHub Provider = iota
	GitLab
	Bitbucket
	Generic
)

func (p Provider) String() string {
	switch p {
	case GitHub:
		return "github"
	case GitLab:
		return "gitlab"
	case Bitbucket:
		return "bitbucket"
	default:
		return "generic"
	}
}

func (p Provider) host() string {
	switch p {
	case GitHub:
		return "github.com"
	case GitLab:
		return "gitlab.com"
	case Bitbucket:
		return "bitbucket.org"
	default:
		return ""
	}
}

// Repo is a parsed remote repository reference.
type Repo struct {
	// URL is the HTTPS clone URL built from the parsed parts.
	URL      string
	Provider Provider
	Owner    string
	Name     string

	// Branch to clone; empty selects the default branch.
	Branch string

	// Subdir narrows the scan to one directory of the checkout.
	Subdir string
}

// IsRemoteURL reports whether input names a remote repository rather
// than a local path. The bare owner/repo shorthand counts; paths
// starting with "/" or "." do not.
func IsRemoteURL(input string) bool {
	if strings.Contains(input, "://") || strings.HasPrefix(input, "git@") {
		return true
	}
	for _, prefix := range []string{"github:", "gitlab:", "bitbucket:"} {
		if strings.HasPrefix(input, prefix) {
			return true
		}
	}
	return strings.Count(input, "/") == 1 &&
		!strings.HasPrefix(input, "/") &&
		!strings.HasPrefix(input, ".")
}

// Parse resolves a repository reference in any supported form:
//
//	https://github.com/owner/repo
//	https://github.com/owner/repo/tree/branch
//	https://github.com/owner/repo/tree/branch/subdir
//	git@github.com:owner/repo.git
//	github:owner/repo
//	owner/repo            (assumes GitHub)
func Parse(input string) (*Repo, error) {
	input = strings.TrimSpace(input)

	for prefix, provider := range map[string]Provider{
		"github:":    GitHub,
		"gitlab:":    GitLab,
		"bitbucket:": Bitbucket,
	} {
		if rest, ok := strings.CutPrefix(input, prefix); ok {
			return parsePath(rest, provider)
		}
	}

	if !strings.Contains(input, "://") && !strings.Contains(input, "@") && strings.Contains(input, "/") {
		return parsePath(input, GitHub)
	}
	if strings.HasPrefix(input, "git@") {
		return parseSSH(input)
	}
	return parseHTTPS(input)
}

// parsePath handles the owner/repo[/tree/branch[/subdir]] tail shared
// by every URL form.
func parsePath(path string, provider Provider) (*Repo, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("remote reference %q is not owner/repo shaped", path)
	}

	r := &Repo{
		Provider: provider,
		Owner:    parts[0],
		Name:     strings.TrimSuffix(parts[1], ".git"),
	}
	if len(parts) > 2 {
		if parts[2] == "tree" || parts[2] == "blob" {
			if len(parts) > 3 {
				r.Branch = parts[3]
			}
			if len(parts) > 4 {
				r.Subdir = strings.Join(parts[4:], "/")
			}
		} else {
			r.Subdir = strings.Join(parts[2:], "/")
		}
	}

	host := provider.host()
	if host == "" {
		return nil, fmt.Errorf("cannot build a clone URL for provider %s", provider)
	}
	r.URL = fmt.Sprintf("https://%s/%s/%s.git", host, r.Owner, r.Name)
	return r, nil
}

func parseSSH(input string) (*Repo, error) {
	_, path, ok := strings.Cut(input, ":")
	if !ok {
		return nil, fmt.Errorf("SSH remote %q has no path component", input)
	}
	return parsePath(path, providerForHost(input))
}

func parseHTTPS(input string) (*Repo, error) {
	u, err := url.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("parsing remote URL %q: %w", input, err)
	}
	return parsePath(u.Path, providerForHost(u.Host))
}

func providerForHost(s string) Provider {
	switch {
	case strings.Contains(s, "github.com"):
		return GitHub
	case strings.Contains(s, "gitlab.com"):
		return GitLab
	case strings.Contains(s, "bitbucket.org"):
		return Bitbucket
	default:
		return Generic
	}
}

// Clone performs a shallow, single-branch clone into targetDir. An
// empty targetDir selects a directory under the system temp dir, which
// is removed first if a previous run left it behind. The returned path
// points at Subdir when one was parsed and exists in the checkout.
func (r *Repo) Clone(ctx context.Context, targetDir string) (string, error) {
	if targetDir == "" {
		targetDir = filepath.Join(os.TempDir(), fmt.Sprintf("infiniloom-%s-%s", r.Owner, r.Name))
	}
	if err := os.RemoveAll(targetDir); err != nil {
		return "", fmt.Errorf("clearing clone target %s: %w", targetDir, err)
	}

	opts := &git.CloneOptions{
		URL:          r.URL,
		Depth:        1,
		SingleBranch: true,
	}
	if r.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(r.Branch)
	}

	if _, err := git.PlainCloneContext(ctx, targetDir, false, opts); err != nil {
		_ = os.RemoveAll(targetDir)
		return "", fmt.Errorf("cloning %s: %w", r.URL, err)
	}

	if r.Subdir != "" {
		sub := filepath.Join(targetDir, filepath.FromSlash(r.Subdir))
		if info, err := os.Stat(sub); err == nil && info.IsDir() {
			return sub, nil
		}
	}
	return targetDir, nil
}
