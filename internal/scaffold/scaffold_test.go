package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sidneyroberto/generator-lp-3/internal/manifest"
)

func TestNewData(t *testing.T) {
	t.Run("explicit port", func(t *testing.T) {
		d := NewData("api", 8080)
		if d.Name != "api" || d.Port != 8080 {
			t.Errorf("NewData() = %+v", d)
		}
	})

	t.Run("zero port falls back", func(t *testing.T) {
		d := NewData("api", 0)
		if d.Port != DefaultPort {
			t.Errorf("Port = %d, want %d", d.Port, DefaultPort)
		}
	})
}

func TestFiles(t *testing.T) {
	files, err := Files(ExpressAPI)
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}
	want := []string{"tsconfig.json", ".gitignore", "src/app.ts", "src/server.ts"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("Files() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateExpressAPI(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "meu-projeto-de-lp3")

	result, err := Generate(ExpressAPI, NewData("meu-projeto-de-lp3", DefaultPort), outDir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertFiles(t, result, []string{"tsconfig.json", ".gitignore", "src/app.ts", "src/server.ts"})
	if result.OutputDir != outDir {
		t.Errorf("OutputDir = %q, want %q", result.OutputDir, outDir)
	}
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	gitignore := readGenerated(t, outDir, ".gitignore")
	if gitignore != ".idea/\n.vscode/\nnode_modules/\nbuild/\ntmp/\ntemp/\n" {
		t.Errorf(".gitignore = %q", gitignore)
	}

	app := readGenerated(t, outDir, "src/app.ts")
	assertContains(t, app, `import express from "express";`)
	assertContains(t, app, `import cors from "cors";`)
	assertContains(t, app, `import logger from "morgan";`)
	assertContains(t, app, `app.use(logger("dev"));`)
	assertContains(t, app, `res.send("API");`)
	assertContains(t, app, "export default app;")

	server := readGenerated(t, outDir, "src/server.ts")
	assertContains(t, server, `import app from "./app";`)
	assertContains(t, server, "const port = process.env.PORT || 3001;")
	assertContains(t, server, `console.log("API em execução")`)
	assertNotContains(t, server, "{{")

	assertManifestValid(t, outDir, "tsconfig.json")
}

func TestGenerateTSConfig(t *testing.T) {
	outDir := t.TempDir()
	if _, err := Generate(ExpressAPI, NewData("api", 0), outDir); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	want := `{
  "compilerOptions": {
    "lib": [
      "es5",
      "es6"
    ],
    "target": "es5",
    "module": "commonjs",
    "moduleResolution": "node",
    "outDir": "./build",
    "emitDecoratorMetadata": true,
    "experimentalDecorators": true,
    "sourceMap": true,
    "esModuleInterop": true
  }
}
`
	if diff := cmp.Diff(want, readGenerated(t, outDir, "tsconfig.json")); diff != "" {
		t.Errorf("tsconfig.json mismatch (-want +got):\n%s", diff)
	}

	var got TSConfig
	if err := json.Unmarshal([]byte(want), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultTSConfig(), got); diff != "" {
		t.Errorf("DefaultTSConfig() round trip (-want +got):\n%s", diff)
	}
}

func TestGenerateCustomPort(t *testing.T) {
	outDir := t.TempDir()
	if _, err := Generate(ExpressAPI, NewData("api", 8080), outDir); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	server := readGenerated(t, outDir, "src/server.ts")
	assertContains(t, server, "process.env.PORT || 8080;")
}

func TestGenerateOverwritesExisting(t *testing.T) {
	outDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(outDir, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(outDir, "src", "app.ts"), []byte("stale"), 0644)
	os.WriteFile(filepath.Join(outDir, "package.json"), []byte(`{"name":"api"}`), 0644)

	if _, err := Generate(ExpressAPI, NewData("api", 0), outDir); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertNotContains(t, readGenerated(t, outDir, "src/app.ts"), "stale")
	if got := readGenerated(t, outDir, "package.json"); got != `{"name":"api"}` {
		t.Errorf("package.json was modified: %q", got)
	}
}

func TestGenerateMergesExistingGitignore(t *testing.T) {
	outDir := t.TempDir()
	os.WriteFile(filepath.Join(outDir, ".gitignore"), []byte(".yarn/cache\nnode_modules/"), 0644)

	if _, err := Generate(ExpressAPI, NewData("api", 0), outDir); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	got := readGenerated(t, outDir, ".gitignore")
	want := ".yarn/cache\nnode_modules/\n.idea/\n.vscode/\nbuild/\ntmp/\ntemp/\n"
	if got != want {
		t.Errorf(".gitignore = %q, want %q", got, want)
	}
}

func TestGenerateInvalidTemplateSet(t *testing.T) {
	_, err := Generate("nonexistent", NewData("api", 0), t.TempDir())
	if err == nil {
		t.Fatal("expected error for invalid template set")
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("error should name the set, got: %v", err)
	}
}

func TestMergeGitignore(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitignore")
	lines := []string{"node_modules/", "", "build/"}

	added, err := MergeGitignore(path, lines)
	if err != nil {
		t.Fatalf("MergeGitignore() error: %v", err)
	}
	if diff := cmp.Diff([]string{"node_modules/", "build/"}, added); diff != "" {
		t.Errorf("added mismatch (-want +got):\n%s", diff)
	}

	added, err = MergeGitignore(path, lines)
	if err != nil {
		t.Fatalf("second MergeGitignore() error: %v", err)
	}
	if len(added) != 0 {
		t.Errorf("second call added %v, want nothing", added)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "node_modules/\nbuild/\n" {
		t.Errorf("content = %q", data)
	}
}

func TestMergeGitignore_DuplicateInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitignore")

	added, err := MergeGitignore(path, []string{"tmp/", " tmp/ "})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"tmp/"}, added); diff != "" {
		t.Errorf("added mismatch (-want +got):\n%s", diff)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func readGenerated(t *testing.T, dir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(filename)))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Errorf("got %d files %v, want %d files %v", len(result.Files), result.Files, len(expected), expected)
		return
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q", substr)
	}
}

func assertManifestValid(t *testing.T, dir, filename string) {
	t.Helper()
	result, err := manifest.ValidateFile(manifest.KindTSConfig, filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("manifest validation error: %v", err)
	}
	if !result.Valid {
		var msgs []string
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		t.Errorf("generated %s is invalid:\n  %s", filename, strings.Join(msgs, "\n  "))
	}
}
