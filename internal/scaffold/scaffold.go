package scaffold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/sidneyroberto/generator-lp-3/internal/manifest"
)

// ExpressAPI is the only template set: an Express server in TypeScript.
const ExpressAPI = "express-api"

// Artifact names written outside the template walk.
const (
	TSConfigFile  = "tsconfig.json"
	GitignoreFile = ".gitignore"
)

// DefaultPort is the fallback port compiled into src/server.ts.
const DefaultPort = 3001

// Data holds all template variables available to scaffold templates.
type Data struct {
	Name string // Project name, e.g. "meu-projeto-de-lp3"
	Port int    // Fallback port when PORT is unset
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewData creates template data, falling back to DefaultPort for a
// non-positive port.
func NewData(name string, port int) *Data {
	if port <= 0 {
		port = DefaultPort
	}
	return &Data{Name: name, Port: port}
}

// CompilerOptions is the compilerOptions block of tsconfig.json. Field order
// is the order written to disk.
type CompilerOptions struct {
	Lib                    []string `json:"lib"`
	Target                 string   `json:"target"`
	Module                 string   `json:"module"`
	ModuleResolution       string   `json:"moduleResolution"`
	OutDir                 string   `json:"outDir"`
	EmitDecoratorMetadata  bool     `json:"emitDecoratorMetadata"`
	ExperimentalDecorators bool     `json:"experimentalDecorators"`
	SourceMap              bool     `json:"sourceMap"`
	EsModuleInterop        bool     `json:"esModuleInterop"`
}

// TSConfig is the generated tsconfig.json document.
type TSConfig struct {
	CompilerOptions CompilerOptions `json:"compilerOptions"`
}

// DefaultTSConfig returns the compiler configuration of every generated project.
func DefaultTSConfig() TSConfig {
	return TSConfig{
		CompilerOptions: CompilerOptions{
			Lib:                    []string{"es5", "es6"},
			Target:                 "es5",
			Module:                 "commonjs",
			ModuleResolution:       "node",
			OutDir:                 "./build",
			EmitDecoratorMetadata:  true,
			ExperimentalDecorators: true,
			SourceMap:              true,
			EsModuleInterop:        true,
		},
	}
}

// Files lists the project-relative paths Generate writes for set, in write order.
func Files(set string) ([]string, error) {
	templates, err := templateFiles(set)
	if err != nil {
		return nil, err
	}
	files := []string{TSConfigFile}
	for _, tmpl := range templates {
		files = append(files, outputName(set, tmpl))
	}
	return files, nil
}

// Generate writes the artifacts of set into outputDir, creating it if needed.
// Existing files are overwritten except .gitignore, which gains any missing
// entries. Schema problems in the written tsconfig.json become warnings.
func Generate(set string, data *Data, outputDir string) (*Result, error) {
	templates, err := templateFiles(set)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{
		OutputDir: outputDir,
	}

	tsconfig, err := json.MarshalIndent(DefaultTSConfig(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", TSConfigFile, err)
	}
	tsconfig = append(tsconfig, '\n')
	if err := os.WriteFile(filepath.Join(outputDir, TSConfigFile), tsconfig, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", TSConfigFile, err)
	}
	result.Files = append(result.Files, TSConfigFile)
	result.Warnings = append(result.Warnings, validate(manifest.KindTSConfig, TSConfigFile, tsconfig)...)

	for _, tmplPath := range templates {
		outName := outputName(set, tmplPath)
		outPath := filepath.Join(outputDir, filepath.FromSlash(outName))

		content, err := render(tmplPath, data)
		if err != nil {
			return nil, err
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", outName, err)
		}

		if outName == GitignoreFile {
			if _, err := MergeGitignore(outPath, strings.Split(string(content), "\n")); err != nil {
				return nil, err
			}
		} else if err := os.WriteFile(outPath, content, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
	}

	return result, nil
}

// MergeGitignore appends each of lines missing from the ignore file at
// filePath, creating the file when absent. Blank lines are skipped. It
// returns the lines it added; a second call with the same lines adds none.
func MergeGitignore(filePath string, lines []string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", GitignoreFile, err)
	}

	present := make(map[string]bool)
	for _, l := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(l)] = true
	}

	var added []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || present[l] {
			continue
		}
		present[l] = true
		added = append(added, l)
	}
	if len(added) == 0 {
		return nil, nil
	}

	// Ensure there's a newline before our addition.
	suffix := strings.Join(added, "\n") + "\n"
	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		suffix = "\n" + suffix
	}

	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening %s for append: %w", GitignoreFile, err)
	}
	defer f.Close()

	if _, err := f.WriteString(suffix); err != nil {
		return nil, fmt.Errorf("writing to %s: %w", GitignoreFile, err)
	}
	return added, nil
}

// templateFiles returns the embedded template paths of set in lexical order.
func templateFiles(set string) ([]string, error) {
	root := path.Join("scaffolds", set)
	if info, err := fs.Stat(scaffoldFS, root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("template set %q not found", set)
	}

	var files []string
	err := fs.WalkDir(scaffoldFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".tmpl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading template set %q: %w", set, err)
	}
	return files, nil
}

// outputName maps an embedded template path to its project-relative output path.
func outputName(set, tmplPath string) string {
	rel := strings.TrimPrefix(tmplPath, path.Join("scaffolds", set)+"/")
	return strings.TrimSuffix(rel, ".tmpl")
}

func render(tmplPath string, data *Data) ([]byte, error) {
	raw, err := fs.ReadFile(scaffoldFS, tmplPath)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(path.Base(tmplPath)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", tmplPath, err)
	}
	return buf.Bytes(), nil
}

func validate(kind manifest.Kind, name string, data []byte) []string {
	res, err := manifest.Validate(kind, data)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate %s: %v", name, err)}
	}
	var warnings []string
	for _, issue := range res.Issues {
		warnings = append(warnings, name+" "+issue.String())
	}
	return warnings
}
