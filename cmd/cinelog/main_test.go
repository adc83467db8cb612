package main

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinelog/internal/catalog"
	"cinelog/internal/logging"
	"cinelog/internal/storage"
	"cinelog/internal/testsupport"
)

func TestAddListDeleteRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"add", "alien"}, env.configPath, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Movie 'Alien' was added to the catalog.")

	if _, _, err := runCLI(t, []string{"add", "Heat"}, env.configPath, ""); err != nil {
		t.Fatalf("add heat: %v", err)
	}

	out, _, err = runCLI(t, []string{"list"}, env.configPath, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "2 movies in total")
	requireContains(t, out, "Alien")
	requireContains(t, out, "Heat")

	out, _, err = runCLI(t, []string{"delete", "ALIEN"}, env.configPath, "")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	requireContains(t, out, "Movie 'Alien' successfully deleted.")

	out, _, err = runCLI(t, []string{"list", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var listing listJSON
	if err := json.Unmarshal([]byte(out), &listing); err != nil {
		t.Fatalf("decode list json: %v\n%s", err, out)
	}
	if listing.Count != 1 || listing.Movies[0].Title != "Heat" || listing.Movies[0].PosterURL != "" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
	if listing.Movies[0].ExternalID != "tt0113277" {
		t.Fatalf("external id = %q", listing.Movies[0].ExternalID)
	}
}

func TestListJSONKeepsAmpersands(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"add", "Fast", "&", "Furious"}, env.configPath, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, _, err := runCLI(t, []string{"list", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	requireContains(t, out, `"title": "Fast & Furious"`)
	if strings.Contains(out, `\u0026`) {
		t.Fatalf("expected unescaped ampersand:\n%s", out)
	}
}

func TestAddRecoverableErrors(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"add", "Alien"}, env.configPath, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, _, err := runCLI(t, []string{"add", "  alien "}, env.configPath, "")
	if !errors.Is(err, catalog.ErrDuplicateTitle) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	_, _, err = runCLI(t, []string{"add", "Unknown Picture"}, env.configPath, "")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	_, _, err = runCLI(t, []string{"delete", "Unknown Picture"}, env.configPath, "")
	if !errors.Is(err, catalog.ErrNotInCatalog) {
		t.Fatalf("expected not-in-catalog error, got %v", err)
	}
}

func TestAddWithoutAPIKey(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithOMDb("", ""))

	_, _, err := runCLI(t, []string{"add", "Alien"}, env.configPath, "")
	if !errors.Is(err, catalog.ErrLookupUnavailable) {
		t.Fatalf("expected lookup unavailable, got %v", err)
	}
}

func TestStatsAndRandomOnEmptyCatalog(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, args := range [][]string{{"stats"}, {"random"}} {
		_, _, err := runCLI(t, args, env.configPath, "")
		if !errors.Is(err, catalog.ErrEmptyCatalog) {
			t.Fatalf("%v: expected empty catalog error, got %v", args, err)
		}
	}
}

func TestStatsSearchSorted(t *testing.T) {
	env := setupCLITestEnv(t)
	for _, title := range []string{"Heat", "Alien"} {
		if _, _, err := runCLI(t, []string{"add", title}, env.configPath, ""); err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
	}

	out, _, err := runCLI(t, []string{"stats"}, env.configPath, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Average rating: 8.4")
	requireContains(t, out, "Best Movie: Alien, 8.5")
	requireContains(t, out, "Worst Movie: Heat, 8.3")

	out, _, err = runCLI(t, []string{"stats", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("stats --json: %v", err)
	}
	var stats statsJSON
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Count != 2 || stats.Best.Title != "Alien" || stats.Mean != 8.4 || math.Abs(stats.Median-8.4) > 1e-9 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	out, _, err = runCLI(t, []string{"search", "alein"}, env.configPath, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "Found 1 movies:")

	out, _, err = runCLI(t, []string{"sorted"}, env.configPath, "")
	if err != nil {
		t.Fatalf("sorted: %v", err)
	}
	if strings.Index(out, "Alien") > strings.Index(out, "Heat") {
		t.Fatalf("expected Alien before Heat:\n%s", out)
	}
}

func TestInteractiveMenu(t *testing.T) {
	env := setupCLITestEnv(t)

	input := strings.Join([]string{"2", "alien", "", "1", "", "banana", "0"}, "\n") + "\n"
	out, _, err := runCLI(t, nil, env.configPath, input)
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	requireContains(t, out, "My Movies Database")
	requireContains(t, out, "Movie 'Alien' was added to the catalog.")
	requireContains(t, out, "1 movies in total")
	requireContains(t, out, `Invalid choice "banana"`)
	requireContains(t, out, "Bye!")

	logData, err := os.ReadFile(filepath.Join(env.cfg.Logging.Dir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	requireContains(t, string(logData), "menu action completed [add/")
}

func TestCatalogLockedByAnotherSession(t *testing.T) {
	env := setupCLITestEnv(t)

	lock, err := storage.AcquireLock(env.cfg.Catalog.Path)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	t.Cleanup(func() { _ = lock.Release() })

	_, _, err = runCLI(t, []string{"list"}, env.configPath, "")
	if !errors.Is(err, storage.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestCSVCatalogFromConfig(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithCatalog("movies.csv", ""))

	if _, _, err := runCLI(t, []string{"add", "Alien"}, env.configPath, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	data, err := os.ReadFile(env.cfg.Catalog.Path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.HasPrefix(string(data), "title,year,rating,poster_url,external_id\n") {
		t.Fatalf("unexpected csv:\n%s", data)
	}
	requireContains(t, string(data), "Alien,1979,8.5")
}

func TestSiteGenerateAndInitTemplate(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"add", "Alien"}, env.configPath, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err := runCLI(t, []string{"site", "generate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("site generate: %v", err)
	}
	requireContains(t, out, "Website was generated successfully.")
	page, err := os.ReadFile(env.cfg.Site.OutputPath)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	requireContains(t, string(page), "https://www.imdb.com/title/tt0078748")

	target := filepath.Join(env.baseDir, "tmpl", "index_template.html")
	out, _, err = runCLI(t, []string{"site", "init-template", "--path", target}, env.configPath, "")
	if err != nil {
		t.Fatalf("init-template: %v", err)
	}
	requireContains(t, out, "Wrote page template to "+target)
	if _, _, err := runCLI(t, []string{"site", "init-template", "--path", target}, env.configPath, ""); err == nil {
		t.Fatal("expected error when template exists")
	}
}

func TestLogsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"logs"}, env.configPath, "")
	if err != nil {
		t.Fatalf("logs before any session: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}

	if _, _, err := runCLI(t, []string{"add", "Alien"}, env.configPath, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, _, err = runCLI(t, []string{"logs", "-n", "5"}, env.configPath, "")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "movie added")
	requireContains(t, out, "title=Alien")
}
