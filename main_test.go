package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlainMain() *Main {
	return &Main{IsTerminal: func(io.Writer) bool { return false }}
}

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newStatusServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/bad") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestMain_Run_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := newPlainMain().Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "llmscheck")
	assert.Contains(t, stdout.String(), "--link-concurrency")
}

func TestMain_Run_AllValid(t *testing.T) {
	server := newStatusServer(t)
	root := t.TempDir()
	writeDoc(t, root, "go/llms.txt", fmt.Sprintf("## Resources\n* [A](%s/good/x)\n## Other\n* [B](%s/bad/y)\n", server.URL, server.URL))
	var stdout, stderr bytes.Buffer

	err := newPlainMain().Run(context.Background(), []string{root}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "All links are valid!")
	assert.Contains(t, stderr.String(), "checking file")
	assert.Contains(t, stderr.String(), server.URL+"/good/x")
	assert.NotContains(t, stderr.String(), "/bad/y")
}

func TestMain_Run_FailuresReturnErrFailures(t *testing.T) {
	server := newStatusServer(t)
	root := t.TempDir()
	writeDoc(t, root, "llms.txt", fmt.Sprintf("## Documentation\n* [B](%s/bad/y)\n", server.URL))
	var stdout, stderr bytes.Buffer

	err := newPlainMain().Run(context.Background(), []string{root}, &stdout, &stderr)

	require.ErrorIs(t, err, ErrFailures)
	assert.Contains(t, stdout.String(), "URL: "+server.URL+"/bad/y")
	assert.Contains(t, stdout.String(), "Reason: Status 404")
	assert.Contains(t, stdout.String(), filepath.Join(root, "llms.txt"))
	assert.Contains(t, stderr.String(), "failed")
}

func TestMain_Run_SkippedOnlyExitsCleanly(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "llms.txt", "## Resources\n* [C](mailto:a@b.com)\n")
	var stdout, stderr bytes.Buffer

	err := newPlainMain().Run(context.Background(), []string{root}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "(1 skipped)")
}

func TestMain_Run_EmptyTree(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := newPlainMain().Run(context.Background(), []string{t.TempDir()}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Checked 0 links in 0 files")
}

func TestMain_Run_MissingRoot(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := newPlainMain().Run(context.Background(), []string{filepath.Join(t.TempDir(), "absent")}, &stdout, &stderr)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFailures)
	assert.Empty(t, stdout.String())
}

func TestMain_Run_JSONFormat(t *testing.T) {
	server := newStatusServer(t)
	root := t.TempDir()
	writeDoc(t, root, "llms.txt", fmt.Sprintf("## Resources\n[a](%s/good)\n[b](%s/bad)\n", server.URL, server.URL))
	var stdout, stderr bytes.Buffer

	err := newPlainMain().Run(context.Background(), []string{"--format", "json", root}, &stdout, &stderr)

	require.ErrorIs(t, err, ErrFailures)
	var failures []map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &failures))
	require.Len(t, failures, 1)
	assert.Equal(t, server.URL+"/bad", failures[0]["url"])
	assert.Equal(t, "Status 404", failures[0]["reason"])
}

func TestMain_Run_CSVFormat(t *testing.T) {
	root := t.TempDir()
	var stdout, stderr bytes.Buffer

	err := newPlainMain().Run(context.Background(), []string{"-f", "csv", root}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "file,url,status_code,error_type,reason\n", stdout.String())
}

func TestMain_Run_InvalidFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := newPlainMain().Run(context.Background(), []string{"--format", "xml", t.TempDir()}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_ConcurrencyFlags(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "llms.txt", "## Resources\n[m](mailto:x@y.z)\n")
	var stdout, stderr bytes.Buffer

	args := []string{"--file-concurrency", "1", "--link-concurrency", "2", "--timeout", "2s", "--rate-limit", "5", "--verbose", root}
	err := newPlainMain().Run(context.Background(), args, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "file done")
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"fatal error printed once", errors.New("check links: scan docs: not a directory"), "Error: check links: scan docs: not a directory\n"},
		{"failures already reported", ErrFailures, ""},
		{"interrupt already shown", ErrInterrupted, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			reportError(&stderr, tt.err)
			assert.Equal(t, tt.want, stderr.String())
		})
	}
}

func TestIsTerminal_NonFileWriter(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
