package pkgmgr

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	apperrors "github.com/sidneyroberto/generator-lp-3/internal/errors"
	"github.com/sidneyroberto/generator-lp-3/internal/logging"
	"github.com/sidneyroberto/generator-lp-3/internal/system"
)

func quiet(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	logging.SetOutput(&out, &out)
	t.Cleanup(func() { logging.SetOutput(nil, nil) })
	return &out
}

func TestDispatch_Known(t *testing.T) {
	for _, name := range Supported() {
		m, err := Dispatch(name, system.NewMockExecutor())
		if err != nil {
			t.Fatalf("Dispatch(%q) error: %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("Name() = %q, want %q", m.Name(), name)
		}
	}
}

func TestDispatch_Invalid(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"unknown", "bun"},
		{"unterminated quote", `yarn "--offline`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Dispatch(tt.spec, system.NewMockExecutor())
			if err == nil {
				t.Fatal("expected error")
			}
			if code := apperrors.GetExitCode(err); code != apperrors.ExitInvalidInput {
				t.Errorf("exit code = %d, want %d", code, apperrors.ExitInvalidInput)
			}
		})
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		spec string
		want []string
	}{
		{
			spec: "yarn",
			want: []string{
				"yarn init -y",
				"yarn add cors express morgan",
				"yarn add typescript @types/node ts-node @types/cors @types/express @types/morgan nodemon -D",
			},
		},
		{
			spec: "npm",
			want: []string{
				"npm init -y",
				"npm install cors express morgan",
				"npm install typescript @types/node ts-node @types/cors @types/express @types/morgan nodemon --save-dev",
			},
		},
		{
			spec: "pnpm",
			want: []string{
				"pnpm init",
				"pnpm add cors express morgan",
				"pnpm add typescript @types/node ts-node @types/cors @types/express @types/morgan nodemon -D",
			},
		},
		{
			spec: "yarn --offline",
			want: []string{
				"yarn --offline init -y",
				"yarn --offline add cors express morgan",
				"yarn --offline add typescript @types/node ts-node @types/cors @types/express @types/morgan nodemon -D",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			quiet(t)
			exec := system.NewMockExecutor()
			m, err := Dispatch(tt.spec, exec)
			if err != nil {
				t.Fatalf("Dispatch() error: %v", err)
			}

			ctx := context.Background()
			if err := m.Init(ctx, "/work/app"); err != nil {
				t.Fatalf("Init() error: %v", err)
			}
			if err := m.Add(ctx, "/work/app", Dependencies, false); err != nil {
				t.Fatalf("Add() error: %v", err)
			}
			if err := m.Add(ctx, "/work/app", DevDependencies, true); err != nil {
				t.Fatalf("Add(dev) error: %v", err)
			}

			if diff := cmp.Diff(tt.want, exec.CommandLines()); diff != "" {
				t.Errorf("commands mismatch (-want +got):\n%s", diff)
			}
			for _, c := range exec.Commands {
				if c.Dir != "/work/app" {
					t.Errorf("command %q ran in %q, want /work/app", c, c.Dir)
				}
			}
		})
	}
}

func TestAdd_EmptyIsNoop(t *testing.T) {
	exec := system.NewMockExecutor()
	m, _ := Dispatch("yarn", exec)

	if err := m.Add(context.Background(), "/x", nil, true); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if len(exec.Commands) != 0 {
		t.Errorf("expected no commands, got %v", exec.CommandLines())
	}
}

func TestRun_LogsCommand(t *testing.T) {
	out := quiet(t)
	m, _ := Dispatch("yarn", system.NewMockExecutor())

	_ = m.Init(context.Background(), "/x")
	if !strings.Contains(out.String(), "Running yarn init -y") {
		t.Errorf("expected command echo, got %q", out.String())
	}
}

func TestRun_FailureIsCommandError(t *testing.T) {
	quiet(t)
	exec := system.NewMockExecutor()
	boom := errors.New("network down")
	exec.AddResponse("yarn add", nil, boom)
	m, _ := Dispatch("yarn", exec)

	err := m.Add(context.Background(), "/x", Dependencies, false)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, boom) {
		t.Errorf("cause lost: %v", err)
	}
	if !strings.Contains(err.Error(), "yarn add cors express morgan") {
		t.Errorf("error should name the command, got %q", err.Error())
	}
}

func TestVersion(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"1.22.19\n", "1.22.19"},
		{"v10.2.4\n", "10.2.4"},
		{"4.1.0", "4.1.0"},
	}
	for _, tt := range tests {
		exec := system.NewMockExecutor()
		exec.AddResponse("yarn --version", []byte(tt.output), nil)
		m, _ := Dispatch("yarn", exec)

		v, err := m.Version(context.Background())
		if err != nil {
			t.Fatalf("Version() error for %q: %v", tt.output, err)
		}
		if v.String() != tt.want {
			t.Errorf("Version() = %s, want %s", v, tt.want)
		}
	}
}

func TestVersion_Unparseable(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddResponse("npm --version", []byte("not-a-version"), nil)
	m, _ := Dispatch("npm", exec)

	if _, err := m.Version(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		output  string
		wantErr bool
	}{
		{"yarn classic ok", "yarn", "1.22.19", false},
		{"yarn berry ok", "yarn", "4.1.0", false},
		{"yarn too old", "yarn", "1.10.1", true},
		{"npm ok", "npm", "10.2.4", false},
		{"npm too old", "npm", "6.14.18", true},
		{"pnpm ok", "pnpm", "8.15.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := system.NewMockExecutor()
			exec.AddResponse(tt.spec+" --version", []byte(tt.output), nil)
			m, _ := Dispatch(tt.spec, exec)

			v, err := CheckVersion(context.Background(), m)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if v == nil || v.String() != tt.output {
				t.Errorf("CheckVersion() version = %v, want %s", v, tt.output)
			}
		})
	}
}
