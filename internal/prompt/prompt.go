package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user aborts the prompt with Ctrl+C or Esc.
var ErrCancelled = errors.New("prompt cancelled")

// Question is a single free-text question with a default answer.
type Question struct {
	Message string
	Default string
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(1, 3)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
)

// Banner renders the greeting box shown before the first question.
func Banner(name string) string {
	return bannerStyle.Render("Welcome to " + nameStyle.Render(name) + "!")
}

// Ask asks q and returns the trimmed answer, or q.Default when the answer is
// empty. A terminal in gets the interactive input; anything else is read as
// a single line.
func Ask(q Question, in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return askInteractive(q, f, out)
	}
	return askLine(q, bufio.NewReader(in), out)
}

func askLine(q Question, reader *bufio.Reader, out io.Writer) (string, error) {
	if q.Default != "" {
		fmt.Fprintf(out, "%s (%s): ", q.Message, q.Default)
	} else {
		fmt.Fprintf(out, "%s: ", q.Message)
	}

	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	if err == io.EOF {
		fmt.Fprintln(out)
	}
	return resolve(line, q.Default), nil
}

func askInteractive(q Question, in *os.File, out io.Writer) (string, error) {
	p := tea.NewProgram(newInputModel(q), tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	m := final.(inputModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.answer, nil
}

func resolve(answer, def string) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def
	}
	return answer
}

// inputModel is a one-question bubbletea model around textinput.
type inputModel struct {
	question  Question
	input     textinput.Model
	answer    string
	done      bool
	cancelled bool
}

func newInputModel(q Question) inputModel {
	ti := textinput.New()
	ti.Placeholder = q.Default
	ti.CharLimit = 214
	ti.Width = 40
	ti.Focus()

	return inputModel{question: q, input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.answer = resolve(m.input.Value(), m.question.Default)
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	switch {
	case m.cancelled:
		return ""
	case m.done:
		return labelStyle.Render(m.question.Message) + " " + answerStyle.Render(m.answer) + "\n"
	}
	return labelStyle.Render(m.question.Message) + " " + m.input.View() + "\n"
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
