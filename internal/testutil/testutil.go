// Package testutil provides shared test helpers for creating config files and image fixtures.
package testutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file pointing at serverURL.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, serverURL string) string {
	t.Helper()

	configContent := fmt.Sprintf(`server:
  base_url: %s
  timeout: 5s
upload:
  max_bytes: 10485760
`, serverURL)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// PNGBytes encodes a blank width x height PNG.
func PNGBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// WritePNG writes a width x height PNG named name into dir and returns its path.
func WritePNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, PNGBytes(t, width, height), 0644))
	return path
}

// WriteFile writes arbitrary content into dir and returns its path.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

// IndexBody is what NewSolveServer answers on GET /
const IndexBody = `{"message":"math problem solver","endpoints":{"/solve_math_problem":"POST - upload an image and solve it"}}`

// NewSolveServer starts a server answering /solve_math_problem with status and body.
// The server is closed when the test finishes.
func NewSolveServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/solve_math_problem", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(IndexBody))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}
