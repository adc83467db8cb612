package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cinelog/internal/config"
	"cinelog/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	omdb       *httptest.Server
}

var omdbFixtures = map[string]map[string]string{
	"alien": {
		"Title":      "Alien",
		"Year":       "1979",
		"imdbRating": "8.5",
		"Poster":     "https://img.example/alien.jpg",
		"imdbID":     "tt0078748",
		"Response":   "True",
	},
	"fast & furious": {
		"Title":      "Fast & Furious",
		"Year":       "2009",
		"imdbRating": "6.5",
		"Poster":     "N/A",
		"imdbID":     "tt1013752",
		"Response":   "True",
	},
	"heat": {
		"Title":      "Heat",
		"Year":       "1995",
		"imdbRating": "8.3",
		"Poster":     "N/A",
		"imdbID":     "tt0113277",
		"Response":   "True",
	},
}

func newOMDbServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("apikey") != "test" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Invalid API key!"})
			return
		}
		fixture, ok := omdbFixtures[strings.ToLower(strings.TrimSpace(r.URL.Query().Get("t")))]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Movie not found!"})
			return
		}
		_ = json.NewEncoder(w).Encode(fixture)
	}))
	t.Cleanup(server.Close)
	return server
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("CINELOG_CATALOG", "")
	t.Chdir(base)

	server := newOMDbServer(t)
	opts = append([]testsupport.ConfigOption{testsupport.WithOMDb("test", server.URL)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)

	configPath := filepath.Join(base, "cinelog.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		omdb:       server,
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
