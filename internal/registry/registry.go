// Package registry queries the Maven Central search API.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	errs "github.com/wexinc/lazymvn/internal/errors"
	"github.com/wexinc/lazymvn/internal/logging"
	"github.com/wexinc/lazymvn/internal/pom"
	"github.com/wexinc/lazymvn/internal/version"
)

// DefaultBaseURL is the Maven Central search service.
const DefaultBaseURL = "https://search.maven.org"

// DefaultRows bounds the number of documents per query.
const DefaultRows = 20

// DefaultUserAgent identifies lazymvn to the registry.
const DefaultUserAgent = "lazymvn"

// searchPath is the solr select endpoint, relative to the base URL.
const searchPath = "/solrsearch/select"

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 512

// Candidate is one artifact returned by a search.
type Candidate struct {
	ID            string `json:"id"`
	GroupID       string `json:"group_id"`
	ArtifactID    string `json:"artifact_id"`
	LatestVersion string `json:"latest_version"`
	VersionCount  int    `json:"version_count"`
}

// Key returns the coordinates of the candidate.
func (c Candidate) Key() pom.Key {
	return pom.Key{GroupID: c.GroupID, ArtifactID: c.ArtifactID}
}

// Dependency converts the candidate into a dependency pinned to its latest version.
func (c Candidate) Dependency() pom.Dependency {
	return pom.Dependency{GroupID: c.GroupID, ArtifactID: c.ArtifactID, Version: c.LatestVersion}
}

// Version is one published version of an artifact.
type Version struct {
	Version     string    `json:"version"`
	PublishedAt time.Time `json:"published_at"`
}

// Searcher is what the event loop needs from a registry.
type Searcher interface {
	Search(ctx context.Context, phrase string) ([]Candidate, error)
	Versions(ctx context.Context, key pom.Key) ([]Version, error)
}

// Client talks to a solr-style Maven search endpoint.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	Rows       int
	UserAgent  string
}

// NewClient creates a client for Maven Central with default settings.
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    DefaultBaseURL,
		Rows:       DefaultRows,
		UserAgent:  DefaultUserAgent,
	}
}

type searchDoc struct {
	ID            string `json:"id"`
	G             string `json:"g"`
	A             string `json:"a"`
	V             string `json:"v"`
	LatestVersion string `json:"latestVersion"`
	VersionCount  int    `json:"versionCount"`
	Timestamp     int64  `json:"timestamp"`
}

type searchResponse struct {
	Response struct {
		NumFound int         `json:"numFound"`
		Docs     []searchDoc `json:"docs"`
	} `json:"response"`
}

// Search returns artifacts matching phrase, best match first.
func (c *Client) Search(ctx context.Context, phrase string) ([]Candidate, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil, nil
	}

	resp, err := c.query(ctx, url.Values{"q": {phrase}})
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(resp.Response.Docs))
	for _, d := range resp.Response.Docs {
		id := d.ID
		if id == "" {
			id = d.G + ":" + d.A
		}
		candidates = append(candidates, Candidate{
			ID:            id,
			GroupID:       d.G,
			ArtifactID:    d.A,
			LatestVersion: d.LatestVersion,
			VersionCount:  d.VersionCount,
		})
	}
	logging.Debug("registry search completed", "phrase", phrase, "found", resp.Response.NumFound, "returned", len(candidates))
	return candidates, nil
}

// Versions returns the published versions of key, newest first. The search
// service orders documents by relevance, so the result is sorted by version
// number here.
func (c *Client) Versions(ctx context.Context, key pom.Key) ([]Version, error) {
	if key.GroupID == "" || key.ArtifactID == "" {
		return nil, fmt.Errorf("incomplete coordinates %q", key.String())
	}

	q := fmt.Sprintf("g:%s AND a:%s", quote(key.GroupID), quote(key.ArtifactID))
	resp, err := c.query(ctx, url.Values{"q": {q}, "core": {"gav"}})
	if err != nil {
		return nil, err
	}

	versions := make([]Version, 0, len(resp.Response.Docs))
	for _, d := range resp.Response.Docs {
		if d.V == "" {
			continue
		}
		v := Version{Version: d.V}
		if d.Timestamp > 0 {
			v.PublishedAt = time.UnixMilli(d.Timestamp).UTC()
		}
		versions = append(versions, v)
	}
	slices.SortStableFunc(versions, func(a, b Version) int {
		return version.CompareVersions(b.Version, a.Version)
	})
	logging.Debug("registry versions completed", "key", key.String(), "returned", len(versions))
	return versions, nil
}

func (c *Client) query(ctx context.Context, params url.Values) (*searchResponse, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	rows := c.Rows
	if rows <= 0 {
		rows = DefaultRows
	}
	params.Set("rows", strconv.Itoa(rows))
	params.Set("wt", "json")

	endpoint := strings.TrimRight(base, "/") + searchPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errs.NetworkUnavailable(req.URL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errs.RegistryStatus(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.RegistryDecode(err)
	}
	return &decoded, nil
}

// quote wraps a solr term in quotes when it contains characters the query
// parser would split on.
func quote(term string) string {
	if strings.ContainsAny(term, " :\"") {
		return strconv.Quote(term)
	}
	return term
}
