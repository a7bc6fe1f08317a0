// Package selfupdate checks GitHub for newer lingo releases.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// DevVersion is the version reported by binaries built without ldflags.
const DevVersion = "(devel)"

const (
	defaultOwner   = "abhisek"
	defaultRepo    = "lingo"
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 10 * time.Second

	modulePath = "github.com/abhisek/lingo"
)

// Checker talks to the GitHub releases API.
type Checker struct {
	owner   string
	repo    string
	baseURL string
	client  *http.Client
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// NewChecker creates a Checker for the lingo repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:   defaultOwner,
		repo:    defaultRepo,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// CheckInput is the running version.
type CheckInput struct {
	Version string
}

// CheckResult describes the latest release.
type CheckResult struct {
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
}

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release and compares it with input.Version.
// Development builds never report an update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	latest := canonical(rel.TagName)
	if latest == "" {
		return nil, fmt.Errorf("release tag %q is not a semantic version", rel.TagName)
	}

	current := canonical(input.Version)
	return &CheckResult{
		LatestVersion:   rel.TagName,
		ReleaseURL:      rel.HTMLURL,
		UpdateAvailable: current != "" && semver.Compare(latest, current) > 0,
	}, nil
}

// InstallCommand is the command that installs the given release tag.
func InstallCommand(tag string) string {
	return "go install " + modulePath + "@" + tag
}

// canonical accepts versions with or without the leading "v".
func canonical(v string) string {
	if v == "" || v == DevVersion {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
