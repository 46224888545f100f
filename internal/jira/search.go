// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/jira-export/internal/adf"
	"github.com/pdiddy/jira-export/pkg/types"
)

// searchFields restricts each search page to the fields the normalizer
// reads; everything else stays on the server.
var searchFields = []string{"summary", "description", "status", "parent"}

// Scope identifies which issues to retrieve: a whole project, or a project
// plus an inclusive numeric key range.
type Scope struct {
	Project  string
	KeyFrom  int
	KeyTo    int
	HasRange bool
}

// ProjectScope covers every issue in a project.
func ProjectScope(project string) Scope {
	return Scope{Project: project}
}

// RangeScope covers issues project-from through project-to, inclusive on
// both ends.
func RangeScope(project string, from, to int) Scope {
	return Scope{Project: project, KeyFrom: from, KeyTo: to, HasRange: true}
}

// JQL compiles the scope to a filter query requesting ascending key order.
func (s Scope) JQL() string {
	if s.HasRange {
		return fmt.Sprintf(
			"project=%s AND issuekey >= %s-%d AND issuekey <= %s-%d ORDER BY key ASC",
			s.Project, s.Project, s.KeyFrom, s.Project, s.KeyTo)
	}
	return fmt.Sprintf("project=%s ORDER BY key ASC", s.Project)
}

// FetchAll retrieves every issue matching scope, walking the token-paged
// search endpoint to completion. Each page is normalized before the next
// request goes out; raw records are never retained.
//
// The loop stops on the first of: an empty page, a response without a
// continuation token (the authoritative end-of-results signal, since the
// service does not reliably send isLast), an explicit isLast=true, or the
// page-count safety cap. Hitting the cap is not a failure: a warning goes to w and the
// accumulated issues are returned.
func (c *Client) FetchAll(ctx context.Context, scope Scope, w io.Writer) ([]types.Issue, error) {
	jql := scope.JQL()

	var issues []types.Issue
	nextPageToken := ""
	pageCount := 0

	for {
		pageCount++

		payload := searchRequest{
			JQL:           jql,
			MaxResults:    c.pageSize,
			Fields:        searchFields,
			NextPageToken: nextPageToken,
		}

		resp, err := c.postJSON(ctx, "/search/jql", payload)
		if err != nil {
			return nil, fmt.Errorf("searching issues (page %d): %w", pageCount, err)
		}

		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return nil, fmt.Errorf(
				"%w: the Jira search API may have changed; check that you are running the latest version",
				ErrEndpointNotFound)
		}
		if resp.StatusCode != http.StatusOK {
			err := apiError(fmt.Sprintf("searching issues (page %d)", pageCount), resp)
			resp.Body.Close()
			return nil, err
		}

		var page searchResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("parsing search response (page %d): %w", pageCount, decodeErr)
		}

		if len(page.Issues) == 0 {
			break
		}

		for _, raw := range page.Issues {
			issues = append(issues, normalizeIssue(raw))
		}

		fmt.Fprintf(w, "page %d: %d issues (%d so far)\n", pageCount, len(page.Issues), len(issues))

		// Absence of nextPageToken is the authoritative stop signal. isLast
		// is honored opportunistically when present; the endpoint does not
		// always send it, so it must never be the primary check.
		nextPageToken = page.NextPageToken
		if nextPageToken == "" {
			break
		}
		if page.IsLast {
			break
		}

		if pageCount >= c.maxPages {
			fmt.Fprintf(w, "warning: reached the %d-page safety limit; returning %d issues fetched so far\n",
				c.maxPages, len(issues))
			break
		}
	}

	return issues, nil
}

// normalizeIssue maps one raw search record to an Issue. Missing summary and
// status become empty strings; a missing description converts to empty
// markup; the parent reference is kept only when the API embedded one.
func normalizeIssue(raw rawIssue) types.Issue {
	issue := types.Issue{
		Key:         raw.Key,
		Summary:     raw.Fields.Summary,
		Status:      raw.Fields.Status.Name,
		Description: adf.Convert(raw.Fields.Description),
	}
	if raw.Fields.Parent != nil {
		issue.Parent = &types.ParentRef{
			Key:     raw.Fields.Parent.Key,
			Summary: raw.Fields.Parent.Fields.Summary,
		}
	}
	return issue
}
