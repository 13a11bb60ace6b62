// Package tui implements the interactive login form shown on first run.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ogs-notify/ogs-notify/internal/session"
)

// ErrLoginCancelled is returned when the user leaves the form with Esc or Ctrl+C.
var ErrLoginCancelled = errors.New("login cancelled")

// LoginPrompter asks for OGS credentials in the terminal. The password field
// is masked and never echoed.
type LoginPrompter struct{}

// Ensure LoginPrompter implements session.Prompter at compile time.
var _ session.Prompter = LoginPrompter{}

// PromptCredentials runs the form until it is submitted or cancelled.
func (LoginPrompter) PromptCredentials(ctx context.Context) (session.Credentials, error) {
	p := tea.NewProgram(newLoginModel(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return session.Credentials{}, fmt.Errorf("login form: %w", err)
	}

	m, ok := final.(loginModel)
	if !ok || m.cancelled || !m.submitted {
		return session.Credentials{}, ErrLoginCancelled
	}
	return m.credentials(), nil
}

type loginModel struct {
	username textinput.Model
	password textinput.Model

	focusIndex int // 0=username, 1=password
	errMsg     string
	submitted  bool
	cancelled  bool
}

func newLoginModel() loginModel {
	u := textinput.New()
	u.Placeholder = "username"
	u.Prompt = "username: "
	u.CharLimit = 100
	u.Focus()

	p := textinput.New()
	p.Placeholder = "password"
	p.Prompt = "password: "
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'
	p.CharLimit = 200

	return loginModel{username: u, password: p}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			m.toggleFocus()
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) submit() (tea.Model, tea.Cmd) {
	creds := m.credentials()
	switch {
	case m.focusIndex == 0 && creds.Password == "":
		m.toggleFocus()
		return m, nil
	case creds.Username == "":
		m.errMsg = "username is required"
		if m.focusIndex != 0 {
			m.toggleFocus()
		}
		return m, nil
	case creds.Password == "":
		m.errMsg = "password is required"
		return m, nil
	}
	m.submitted = true
	return m, tea.Quit
}

func (m *loginModel) toggleFocus() {
	if m.focusIndex == 0 {
		m.focusIndex = 1
		m.username.Blur()
		m.password.Focus()
	} else {
		m.focusIndex = 0
		m.password.Blur()
		m.username.Focus()
	}
}

func (m loginModel) credentials() session.Credentials {
	return session.Credentials{
		Username: strings.TrimSpace(m.username.Value()),
		Password: m.password.Value(),
	}
}

func (m loginModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Log in to online-go.com"))
	b.WriteString("\n\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter: next/submit • tab: switch field • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}
