package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpaHandlerServesExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>index</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('app')"), 0o644))

	spa := spaHandler{staticPath: dir, indexPath: "index.html"}

	req := httptest.NewRequest("GET", "/app.js", nil)
	rr := httptest.NewRecorder()
	spa.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "console.log('app')", rr.Body.String())
}

func TestSpaHandlerFallsBackToIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>index</html>"), 0o644))

	spa := spaHandler{staticPath: dir, indexPath: "index.html"}

	// Client-side routes have no file behind them; the SPA entry point is
	// served instead.
	req := httptest.NewRequest("GET", "/forms/abc123", nil)
	rr := httptest.NewRecorder()
	spa.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<html>index</html>", rr.Body.String())
}
