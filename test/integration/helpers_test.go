//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeYarn is a stand-in for yarn that records each invocation as
// "<dir>|<args>" and writes package.json on init. FAKE_YARN_FAIL makes
// "add" exit with that status.
const fakeYarn = `#!/bin/sh
echo "$(pwd)|$*" >> "$FAKE_YARN_LOG"
case "$1" in
  init)
    printf '{\n  "name": "%s",\n  "version": "1.0.0",\n  "main": "index.js",\n  "license": "MIT"\n}\n' "$(basename "$(pwd)")" > package.json
    ;;
  --version)
    echo "1.22.19"
    ;;
  add)
    if [ -n "$FAKE_YARN_FAIL" ]; then
      exit "$FAKE_YARN_FAIL"
    fi
    ;;
esac
exit 0
`

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir   string // LP3_HOME, holds config.yaml
	ParentDir string // Where projects are generated
	BinDir    string // Prepended to PATH, holds the fake yarn
	LogFile   string // Invocation log written by the fake yarn
}

// setupTestEnv creates isolated temp directories, installs the fake yarn and
// sets environment variables so every lp3 operation is sandboxed. The env
// vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake package manager is a POSIX shell script")
	}

	env := &testEnv{
		HomeDir:   t.TempDir(),
		ParentDir: t.TempDir(),
		BinDir:    t.TempDir(),
	}
	env.LogFile = filepath.Join(env.BinDir, "yarn.log")

	writeFile(t, filepath.Join(env.BinDir, "yarn"), fakeYarn)
	if err := os.Chmod(filepath.Join(env.BinDir, "yarn"), 0755); err != nil {
		t.Fatalf("chmod fake yarn: %v", err)
	}

	t.Setenv("LP3_HOME", env.HomeDir)
	t.Setenv("FAKE_YARN_LOG", env.LogFile)
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	return env
}

// invocations returns the fake yarn log as "<dir>|<args>" lines.
func (e *testEnv) invocations(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("reading %s: %v", e.LogFile, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
