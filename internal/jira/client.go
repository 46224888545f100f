// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jira is a client for the Jira Cloud REST API v3, covering the
// operations the exporter needs: connection check, project lookup, project
// listing, issue counting, and paginated issue retrieval.
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/jira-export/pkg/types"
)

// Error kinds the CLI distinguishes when reporting failures. All are wrapped
// with operation context; match with errors.Is.
var (
	// ErrAuthFailed means the Jira credentials were rejected.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrProjectNotFound means the project does not exist or is not visible
	// to the authenticated account.
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectArchived means the project is archived. Archived projects
	// are read-only in the Jira API and cannot be exported.
	ErrProjectArchived = errors.New("project is archived")

	// ErrEndpointNotFound means the search endpoint itself returned 404,
	// which signals an incompatible API contract rather than a bad query.
	ErrEndpointNotFound = errors.New("search API endpoint not found")
)

const (
	defaultPageSize     = 100
	defaultMaxPages     = 1000
	projectListPageSize = 50
)

// Doer executes an HTTP request. The CLI passes an *http.Client whose
// transport owns the retry policy; the client itself never retries.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Jira Cloud REST API v3 client.
type Client struct {
	baseURL    string
	authHeader string
	userAgent  string
	doer       Doer
	pageSize   int
	maxPages   int
}

// NewClient builds a client from cfg. cfg.Domain is normally a bare host
// ("yourcompany.atlassian.net"); a value carrying a scheme is used verbatim,
// which lets tests point the client at a local server.
func NewClient(cfg types.JiraConfig, doer Doer) *Client {
	base := cfg.Domain
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	creds := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.APIToken))

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	return &Client{
		baseURL:    strings.TrimRight(base, "/") + "/rest/api/3",
		authHeader: "Basic " + creds,
		userAgent:  cfg.UserAgent,
		doer:       doer,
		pageSize:   pageSize,
		maxPages:   maxPages,
	}
}

// TestConnection verifies the credentials against the /myself endpoint.
func (c *Client) TestConnection(ctx context.Context) error {
	resp, err := c.get(ctx, "/myself")
	if err != nil {
		return fmt.Errorf("testing connection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: Jira returned HTTP %d", ErrAuthFailed, resp.StatusCode)
	}
	return nil
}

// Project fetches a single project by key. It returns ErrProjectNotFound for
// a missing or inaccessible project and ErrProjectArchived for an archived
// one, so the caller refuses the export before fetching any issues.
func (c *Client) Project(ctx context.Context, key string) (types.Project, error) {
	resp, err := c.get(ctx, "/project/"+key)
	if err != nil {
		return types.Project{}, fmt.Errorf("fetching project %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return types.Project{}, fmt.Errorf(
			"%w: %q may have been deleted or you may not have access to it",
			ErrProjectNotFound, key)
	}
	if resp.StatusCode != http.StatusOK {
		return types.Project{}, apiError("fetching project "+key, resp)
	}

	var pr projectResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return types.Project{}, fmt.Errorf("parsing project response: %w", err)
	}

	if pr.Archived {
		return types.Project{}, fmt.Errorf(
			"%w: %q is read-only and cannot be exported; choose an active project or ask your Jira admin to restore it",
			ErrProjectArchived, key)
	}

	return types.Project{Key: pr.Key, Name: pr.Name, Archived: pr.Archived}, nil
}

// IssueCount returns the total number of issues in a project without
// fetching any issue data. A single request with maxResults zero carries
// only the reported total, so it is fast even for very large projects.
func (c *Client) IssueCount(ctx context.Context, projectKey string) (int, error) {
	payload := searchRequest{
		JQL:        "project=" + projectKey,
		MaxResults: 0,
	}

	resp, err := c.postJSON(ctx, "/search/jql", payload)
	if err != nil {
		return 0, fmt.Errorf("counting issues in %s: %w", projectKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, apiError("counting issues in "+projectKey, resp)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return 0, fmt.Errorf("parsing count response: %w", err)
	}
	return sr.Total, nil
}

// ListProjects retrieves all accessible live projects. The project endpoint
// pages with startAt offsets and signals completion with isLast; an absent
// isLast means the page was final.
func (c *Client) ListProjects(ctx context.Context) ([]types.Project, error) {
	var all []types.Project
	startAt := 0

	for {
		path := fmt.Sprintf("/project/search?startAt=%d&maxResults=%d&status=live",
			startAt, projectListPageSize)

		resp, err := c.get(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("listing projects: %w", err)
		}

		var page projectSearchResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&page)
		status := resp.StatusCode
		resp.Body.Close()

		if status != http.StatusOK {
			return nil, fmt.Errorf("listing projects: Jira API returned HTTP %d", status)
		}
		if decodeErr != nil {
			return nil, fmt.Errorf("parsing project list: %w", decodeErr)
		}

		if len(page.Values) == 0 {
			break
		}
		for _, p := range page.Values {
			all = append(all, types.Project{Key: p.Key, Name: p.Name, Archived: p.Archived})
		}

		if page.IsLast == nil || *page.IsLast {
			break
		}
		startAt += projectListPageSize
	}

	return all, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)
	return c.doer.Do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	return c.doer.Do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// apiError builds an error from a non-success response, including a bounded
// slice of the body since Jira puts its diagnostics there.
func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("%s: Jira API returned HTTP %d", op, resp.StatusCode)
	}
	return fmt.Errorf("%s: Jira API returned HTTP %d: %s", op, resp.StatusCode, msg)
}
