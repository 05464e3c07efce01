package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibneal/PersonalWebsite/core"
	"github.com/ibneal/PersonalWebsite/core/showcase"
)

type stubFetcher map[string]string

func (f stubFetcher) Fetch(ctx context.Context, location string) (*core.Document, error) {
	body, ok := f[location]
	if !ok {
		return nil, errors.New("not found")
	}
	return &core.Document{URL: location, ContentType: "text/markdown", Body: body}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	projects := []core.Project{
		{ID: 1, Title: "Dashboard", EmbedURL: "https://dash.example.com/"},
		{ID: 2, Title: "Docs", DocURL: "https://example.com/README.md"},
		{ID: 3, Title: "Gone", DocURL: "https://example.com/gone.md"},
	}
	fetcher := stubFetcher{"https://example.com/README.md": "## Setup\n\n- one\n- two"}
	panel := showcase.New(projects, fetcher)

	srv := httptest.NewServer(New(panel, nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServer_Projects(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/projects")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var projects []core.Project
	require.NoError(t, json.Unmarshal([]byte(body), &projects))
	require.Len(t, projects, 3)
	assert.Equal(t, "Docs", projects[1].Title)
}

func TestServer_SelectDocs(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/projects/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view showcase.View
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Equal(t, showcase.KindDocs, view.Kind)
	assert.Equal(t, "<h2>Setup</h2>\n<br>\n<ul>\n<li>one</li>\n<li>two</li>\n</ul>", view.Content)
}

func TestServer_Content(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"embed", "/projects/0/content", `<iframe src="https://dash.example.com/" title="Dashboard" loading="lazy"></iframe>`},
		{"docs", "/projects/1/content", "<h2>Setup</h2>\n<br>\n<ul>\n<li>one</li>\n<li>two</li>\n</ul>"},
		{"fallback", "/projects/2/content", showcase.DefaultFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
			assert.Equal(t, tt.want, body)
		})
	}
}

func TestServer_Current(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv.URL+"/projects/current")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	get(t, srv.URL+"/projects/0")

	resp, body := get(t, srv.URL+"/projects/current")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view showcase.View
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, showcase.KindEmbed, view.Kind)
}

func TestServer_Errors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/projects/abc", http.StatusBadRequest},
		{"/projects/9", http.StatusNotFound},
		{"/projects/-1/content", http.StatusNotFound},
		{"/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		resp, _ := get(t, srv.URL+tt.path)
		assert.Equal(t, tt.status, resp.StatusCode, tt.path)
	}
}

func TestServer_LogsRequests(t *testing.T) {
	var logs bytes.Buffer
	router := New(showcase.New(nil, stubFetcher{}), log.New(&logs, "", 0)).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, logs.String(), "GET /projects/abc status=400")
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/projects", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(showcase.New(nil, stubFetcher{}), nil)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	cancel()

	assert.NoError(t, <-done)
}
