package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"paper2code/artifact"
	"paper2code/generator"
	"paper2code/runner"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type failingLLM struct{}

func (failingLLM) Complete(context.Context, generator.Request) (string, error) {
	return "", errors.New("rate limited")
}

func newTestServer(t *testing.T, llm generator.LLMClient) (*Server, string) {
	t.Helper()
	rn, err := runner.New(generator.NewCompleter(llm, nil), artifact.NewWriter(nil), runner.NewConsole(nil), nil)
	require.NoError(t, err)
	root := t.TempDir()
	srv, err := New(rn, root, nil)
	require.NoError(t, err)
	return srv, root
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data)))
	return rec
}

func TestStages_List(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stages", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp stagesResp
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"planning", "analyzing", "coding"}, resp.Stages)
}

func TestStageRun_DemoPlanning(t *testing.T) {
	srv, root := newTestServer(t, nil)
	rec := post(t, srv.Routes(), "/api/stages/planning", map[string]any{
		"paper_name":   "Foo",
		"paper_format": "JSON",
		"content":      `{"title":"Foo"}`,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp stageRunResp
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "planning", resp.Stage)
	assert.Equal(t, "demo", resp.Kind)
	assert.Contains(t, resp.Text, "Demo Response for Foo")
	assert.Equal(t, filepath.Join(root, resp.RunID, "planning_response.txt"), resp.ResponsePath)

	data, err := os.ReadFile(resp.ResponsePath)
	require.NoError(t, err)
	assert.Equal(t, resp.Text, string(data))
}

func TestStageRun_CodingWritesRepo(t *testing.T) {
	srv, root := newTestServer(t, failingLLM{})
	rec := post(t, srv.Routes(), "/api/stages/coding", map[string]any{
		"paper_name":   "Foo",
		"paper_format": "LaTeX",
		"content":      `\section{Intro}`,
		"temperature":  0.2,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp stageRunResp
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, "recovered", resp.Kind)
	assert.Equal(t, "Error: rate limited. Please check your API key and try again.", resp.Text)
	assert.Len(t, resp.Files, 4)
	assert.FileExists(t, filepath.Join(root, resp.RunID, "repo", "main.py"))
}

func TestStageRun_BadRequests(t *testing.T) {
	srv, root := newTestServer(t, nil)
	h := srv.Routes()

	rec := post(t, h, "/api/stages/planning", map[string]any{"paper_format": "PDF", "content": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h, "/api/stages/planning", map[string]any{"paper_format": "JSON", "content": "{not json"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h, "/api/stages/review", map[string]any{"content": "{}"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stages/planning", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNew_RequiresRunner(t *testing.T) {
	_, err := New(nil, "", nil)
	assert.Error(t, err)
}
