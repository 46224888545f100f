// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jira

import "github.com/pdiddy/jira-export/internal/adf"

// Jira Cloud REST API v3 JSON structures. Only the fields the exporter
// reads are declared; everything else is dropped at decode time.

// searchRequest is the body for POST /rest/api/3/search/jql.
type searchRequest struct {
	JQL           string   `json:"jql"`
	MaxResults    int      `json:"maxResults"`
	Fields        []string `json:"fields,omitempty"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
}

// searchResponse is one page of search results. NextPageToken is empty on
// the last page; IsLast is not always present, so absence must not be read
// as a stop signal.
type searchResponse struct {
	Issues        []rawIssue `json:"issues"`
	Total         int        `json:"total"`
	NextPageToken string     `json:"nextPageToken"`
	IsLast        bool       `json:"isLast"`
}

type rawIssue struct {
	Key    string    `json:"key"`
	Fields rawFields `json:"fields"`
}

type rawFields struct {
	Summary     string     `json:"summary"`
	Status      rawStatus  `json:"status"`
	Description *adf.Node  `json:"description"`
	Parent      *rawParent `json:"parent"`
}

type rawStatus struct {
	Name string `json:"name"`
}

type rawParent struct {
	Key    string          `json:"key"`
	Fields rawParentFields `json:"fields"`
}

type rawParentFields struct {
	Summary string `json:"summary"`
}

// projectResponse is the body of GET /rest/api/3/project/{key}.
type projectResponse struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}

// projectSearchResponse is one page of GET /rest/api/3/project/search.
// IsLast is a pointer because the endpoint omits it on some deployments;
// absence is treated as "last page" for this endpoint.
type projectSearchResponse struct {
	Values []projectResponse `json:"values"`
	IsLast *bool             `json:"isLast"`
}
