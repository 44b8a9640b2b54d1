package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio/internal/config"
	"portfolio/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("PORTFOLIO_PUBLIC_BASE_URL", "")
	t.Setenv("PORTFOLIO_PROJECT_ROOT", "")

	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"
	encoded, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	configPath := filepath.Join(testsupport.BaseDir(cfg), "portfolio.toml")
	if err := os.WriteFile(configPath, []byte(encoded), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func (e *cliTestEnv) sourceImage(category, name string) string {
	return filepath.Join(e.cfg.Paths.SourceDir, category, name)
}

func (e *cliTestEnv) output(parts ...string) string {
	return filepath.Join(append([]string{e.cfg.Paths.OutputDir}, parts...)...)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func requireExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func TestRunWritesRenditions(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteJPEG(t, env.sourceImage("wildlife", "tiger.jpg"), 2400, 1600)
	testsupport.WritePNG(t, env.sourceImage("wildlife", "heron.png"), 300, 200)

	out, _, err := runCLI(t, []string{"run", "--category", "wildlife"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "wildlife")
	requireContains(t, out, "processed")

	for _, name := range []string{"tiger.jpeg", "heron.jpeg"} {
		requireExists(t, env.output("wildlife", "thumbnails", name))
		requireExists(t, env.output("wildlife", "fullscreen", name))
	}
	entries, err := os.ReadDir(env.output("wildlife", "hero"))
	if err != nil {
		t.Fatalf("read hero dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one hero rendition, got %d", len(entries))
	}
}

func TestRootCommandRunsPipeline(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteJPEG(t, env.sourceImage("Hampi", "stone-chariot.jpg"), 800, 600)

	if _, _, err := runCLI(t, []string{"--category", "hampi"}, env.configPath); err != nil {
		t.Fatalf("root run: %v", err)
	}
	requireExists(t, env.output("hampi", "fullscreen", "stone-chariot.jpeg"))
}

func TestRunContainsCorruptImages(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteJPEG(t, env.sourceImage("wildlife", "tiger.jpg"), 640, 480)
	testsupport.WriteCorrupt(t, env.sourceImage("wildlife", "broken.jpg"))

	out, _, err := runCLI(t, []string{"run", "--category", "wildlife"}, env.configPath)
	if err != nil {
		t.Fatalf("run should succeed despite failed jobs: %v", err)
	}
	requireContains(t, out, "Failures:")
	requireContains(t, out, "broken.jpg")
	requireExists(t, env.output("wildlife", "thumbnails", "tiger.jpeg"))
}

func TestPlanWritesNothing(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteJPEG(t, env.sourceImage("wildlife", "tiger.jpg"), 640, 480)

	out, _, err := runCLI(t, []string{"plan", "--category", "wildlife"}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "Planned 3 renditions across 1 categories")
	requireContains(t, out, "first-file")
	if _, err := os.Stat(env.output("wildlife")); !os.IsNotExist(err) {
		t.Fatalf("plan should not create output, stat err = %v", err)
	}
}

func TestPlanListsBaseNameCollisions(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteJPEG(t, env.sourceImage("hampi", "a.jpg"), 64, 48)
	testsupport.WritePNG(t, env.sourceImage("hampi", "a.png"), 48, 64)

	out, _, err := runCLI(t, []string{"plan", "--category", "hampi"}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "Skipped, base name already used: hampi/a.png (same output as a.jpg)")
	requireContains(t, out, "Planned 3 renditions across 1 categories")
}

func TestCatalogListsSourceCounts(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteJPEG(t, env.sourceImage("wildlife", "a.jpg"), 64, 64)
	testsupport.WriteJPEG(t, env.sourceImage("wildlife", "b.jpg"), 64, 64)

	out, _, err := runCLI(t, []string{"catalog", "--category", "wildlife", "--category", "Hampi"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	requireContains(t, out, "missing")
	requireContains(t, out, "2 categories, 2 source images")
}

func TestUnknownCategoryFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"run", "--category", "nope"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	requireContains(t, err.Error(), "nope")
}

func TestHistoryAfterRun(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithHistory())
	testsupport.WriteJPEG(t, env.sourceImage("wildlife", "tiger.jpg"), 640, 480)

	if _, _, err := runCLI(t, []string{"run", "--category", "wildlife"}, env.configPath); err != nil {
		t.Fatalf("run: %v", err)
	}

	out, _, err := runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "run")

	out, _, err = runCLI(t, []string{"history", "prune", "--keep", "0"}, env.configPath)
	if err != nil {
		t.Fatalf("history prune: %v", err)
	}
	requireContains(t, out, "Removed 1 run(s)")
}

func TestHistoryDisabled(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"history", "list"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "history is disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestManifestWrittenWithBaseURL(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithManifest(), testsupport.WithPublicBaseURL("https://bucket.example.com/images"))
	testsupport.WriteJPEG(t, env.sourceImage("wildlife", "tiger.jpg"), 640, 480)

	out, _, err := runCLI(t, []string{"run", "--category", "wildlife"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Manifest: "+env.cfg.Paths.ManifestFile)

	data, err := os.ReadFile(env.cfg.Paths.ManifestFile)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	requireContains(t, string(data), "https://bucket.example.com/images/wildlife/fullscreen/tiger.jpeg")
}

func TestConfigInitShowAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	requireExists(t, target)

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[paths]")
	requireContains(t, out, env.cfg.Paths.SourceDir)

	out, _, err = runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestDoctorReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteJPEG(t, env.sourceImage("wildlife", "tiger.jpg"), 64, 64)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "Source directory:")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "Public base URL:     [WARN] not configured")
}

func TestDoctorFailsWithoutSource(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err == nil {
		t.Fatalf("expected doctor failure without a source tree:\n%s", out)
	}
	requireContains(t, out, "[FAIL]")
}
