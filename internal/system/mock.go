package system

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// MockExecutor implements CommandExecutor for testing. It records every
// command and answers from scripted responses keyed by a command prefix.
type MockExecutor struct {
	mu        sync.Mutex
	Commands  []MockCommand
	responses []MockResponse

	// Paths maps executable names to the location LookPath reports.
	// Names absent from the map are reported as missing.
	Paths map[string]string

	// OnRun, if set, is called for every Run after it is recorded. Tests use
	// it to emulate side effects such as "yarn init" writing package.json.
	OnRun func(cmd MockCommand) error
}

// MockCommand is one recorded invocation.
type MockCommand struct {
	Dir  string
	Name string
	Args []string
}

// String renders the command as a space-joined argv.
func (c MockCommand) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// MockResponse is a scripted answer for commands starting with Pattern.
type MockResponse struct {
	Pattern string
	Output  []byte
	Err     error
}

// NewMockExecutor creates an empty MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{Paths: make(map[string]string)}
}

// AddResponse scripts the output and error for commands whose argv string
// starts with pattern. Later responses win over earlier ones.
func (m *MockExecutor) AddResponse(pattern string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, MockResponse{Pattern: pattern, Output: output, Err: err})
}

func (m *MockExecutor) record(dir, name string, args []string) MockCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := MockCommand{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	m.Commands = append(m.Commands, cmd)
	return cmd
}

func (m *MockExecutor) lookup(cmd MockCommand) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line := cmd.String()
	for i := len(m.responses) - 1; i >= 0; i-- {
		if strings.HasPrefix(line, m.responses[i].Pattern) {
			return m.responses[i].Output, m.responses[i].Err
		}
	}
	return nil, nil
}

func (m *MockExecutor) Run(ctx context.Context, dir string, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := m.record(dir, name, args)
	if m.OnRun != nil {
		if err := m.OnRun(cmd); err != nil {
			return err
		}
	}
	_, err := m.lookup(cmd)
	return err
}

func (m *MockExecutor) Output(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cmd := m.record(dir, name, args)
	return m.lookup(cmd)
}

func (m *MockExecutor) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
}

// CommandLines returns the recorded commands as argv strings.
func (m *MockExecutor) CommandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Commands))
	for i, c := range m.Commands {
		lines[i] = c.String()
	}
	return lines
}

