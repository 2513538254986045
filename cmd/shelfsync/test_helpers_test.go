package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	server     *httptest.Server
	configPath string
	vaultDir   string
}

// newFakeABSServer serves a minimal Audiobookshelf API: one library with two
// items and no listening progress.
func newFakeABSServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"token":"cli-test-token"}}`))
	})
	mux.HandleFunc("/api/libraries", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"libraries":[{"id":"lib1","name":"Audiobooks","mediaType":"book"}]}`))
	})
	mux.HandleFunc("/api/libraries/lib1/items", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[
			{"id":"item1","addedAt":1700000000000,"media":{"metadata":{"title":"First Book","authorName":"Alice Author"},"duration":3600}},
			{"id":"item2","addedAt":1700000100000,"media":{"metadata":{"title":"Second Book","authorName":"Bob Writer"},"duration":7200}}
		]}`))
	})
	mux.HandleFunc("/api/me/listening-sessions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sessions":[]}`))
	})
	mux.HandleFunc("/api/me/progress", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	server := newFakeABSServer(t)
	vaultDir := filepath.Join(base, "vault")
	configPath := filepath.Join(base, "config.toml")

	content := fmt.Sprintf(`[server]
url = %q
token = "cli-test-token"

[output]
vault_dir = %q
folder = "Books"

[history]
enabled = true
path = %q
`, server.URL, vaultDir, filepath.Join(base, "state", "history.db"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{server: server, configPath: configPath, vaultDir: vaultDir}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
