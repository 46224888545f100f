// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/jira-export/pkg/types"
)

func testClient(srv *httptest.Server) *Client {
	return NewClient(types.JiraConfig{
		Domain:   srv.URL,
		Email:    "user@example.com",
		APIToken: "token123",
	}, srv.Client())
}

func TestNewClientBaseURL(t *testing.T) {
	c := NewClient(types.JiraConfig{Domain: "company.atlassian.net"}, http.DefaultClient)
	if c.baseURL != "https://company.atlassian.net/rest/api/3" {
		t.Errorf("baseURL = %q", c.baseURL)
	}

	c = NewClient(types.JiraConfig{Domain: "http://127.0.0.1:9999/"}, http.DefaultClient)
	if c.baseURL != "http://127.0.0.1:9999/rest/api/3" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.JiraConfig{Domain: "x.atlassian.net"}, http.DefaultClient)
	if c.pageSize != 100 {
		t.Errorf("pageSize = %d, want 100", c.pageSize)
	}
	if c.maxPages != 1000 {
		t.Errorf("maxPages = %d, want 1000", c.maxPages)
	}
}

func TestTestConnection(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/3/myself" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		fmt.Fprint(w, `{"displayName": "Test User"}`)
	}))
	defer srv.Close()

	c := testClient(srv)
	if err := c.TestConnection(context.Background()); err != nil {
		t.Fatalf("TestConnection: %v", err)
	}

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("user@example.com:token123"))
	if gotAuth != wantAuth {
		t.Errorf("Authorization = %q, want %q", gotAuth, wantAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestTestConnectionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := testClient(srv).TestConnection(context.Background())
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("err = %v, want ErrAuthFailed", err)
	}
}

func TestProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/3/project/DEMO" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"key": "DEMO", "name": "Demo Project", "archived": false}`)
	}))
	defer srv.Close()

	p, err := testClient(srv).Project(context.Background(), "DEMO")
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if p.Key != "DEMO" || p.Name != "Demo Project" {
		t.Errorf("project = %+v", p)
	}
}

func TestProjectNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv).Project(context.Background(), "NOPE")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("err = %v, want ErrProjectNotFound", err)
	}
	if !strings.Contains(err.Error(), "NOPE") {
		t.Errorf("error should name the project: %v", err)
	}
}

func TestProjectArchivedRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"key": "OLD", "name": "Old Project", "archived": true}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).Project(context.Background(), "OLD")
	if !errors.Is(err, ErrProjectArchived) {
		t.Fatalf("err = %v, want ErrProjectArchived", err)
	}
	if !strings.Contains(err.Error(), "read-only") {
		t.Errorf("error should explain archived projects are read-only: %v", err)
	}
}

func TestIssueCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/3/search/jql" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.MaxResults != 0 {
			t.Errorf("maxResults = %d, want 0", req.MaxResults)
		}
		if req.JQL != "project=DEMO" {
			t.Errorf("jql = %q", req.JQL)
		}
		fmt.Fprint(w, `{"total": 1287, "issues": []}`)
	}))
	defer srv.Close()

	n, err := testClient(srv).IssueCount(context.Background(), "DEMO")
	if err != nil {
		t.Fatalf("IssueCount: %v", err)
	}
	if n != 1287 {
		t.Errorf("count = %d, want 1287", n)
	}
}

func TestListProjectsPaged(t *testing.T) {
	var startAts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		startAts = append(startAts, q.Get("startAt"))
		if q.Get("status") != "live" {
			t.Errorf("status = %q, want live", q.Get("status"))
		}
		switch q.Get("startAt") {
		case "0":
			fmt.Fprint(w, `{"values": [{"key": "AAA", "name": "First"}], "isLast": false}`)
		default:
			fmt.Fprint(w, `{"values": [{"key": "BBB", "name": "Second"}], "isLast": true}`)
		}
	}))
	defer srv.Close()

	projects, err := testClient(srv).ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("len(projects) = %d, want 2", len(projects))
	}
	if projects[0].Key != "AAA" || projects[1].Key != "BBB" {
		t.Errorf("projects = %+v", projects)
	}
	if len(startAts) != 2 || startAts[1] != "50" {
		t.Errorf("startAt sequence = %v, want [0 50]", startAts)
	}
}

func TestListProjectsAbsentIsLastStops(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"values": [{"key": "ONE", "name": "Only"}]}`)
	}))
	defer srv.Close()

	projects, err := testClient(srv).ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (missing isLast means final page)", calls)
	}
	if len(projects) != 1 {
		t.Errorf("len(projects) = %d, want 1", len(projects))
	}
}

func TestAPIErrorIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"errorMessages": ["Field 'bogus' does not exist"]}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).IssueCount(context.Background(), "DEMO")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "HTTP 400") || !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error should carry status and body: %v", err)
	}
}
