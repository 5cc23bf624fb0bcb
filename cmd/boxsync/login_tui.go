package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/boxsync/boxsync/internal/version"
)

// View states
type viewState int

const (
	emailView viewState = iota
	codeView
)

// Strings
const (
	txtEmailPlaceholder = "your@email.com"
	txtCodePlaceholder  = "••••••••"
	txtEmailPrompt      = "Enter your email address"
	txtRequestingCode   = "Requesting verification code..."
	txtVerifyingCode    = "Verifying code..."
	txtCodePrompt       = "Enter the verification code sent to %s"
	txtCodeInfo         = "Please check your inbox or junk folder."
	txtInvalidEmail     = "Invalid email"
	txtInvalidCode      = "Invalid code"
	txtHelp             = "Press 'Enter' to submit. 'Esc' to go back/quit. 'Ctrl+C' to quit."
)

// Styles
var (
	focusedStyle     = green
	helpStyle        = gray
	errorTextStyle   = red
	errorHeaderStyle = red.Bold(true)
	spinnerStyle     = cyan
	placeholderStyle = gray
	titleStyle       = cyan.Bold(true)
)

type LoginTUIOpts struct {
	ServerURL          string
	TokenPath          string
	Note               string // optional note to display to the user
	EmailSubmitHandler func(email string) error
	CodeSubmitHandler  func(email, code string) error
	EmailValidator     func(email string) bool
	CodeValidator      func(code string) bool
}

// loginModel holds the TUI state
type loginModel struct {
	opts *LoginTUIOpts

	emailInput textinput.Model
	codeInput  textinput.Model
	spinner    spinner.Model

	currentView viewState

	isLoading    bool
	errorMessage string // For all types of errors
	message      string // For loading messages
	width        int

	submittedEmail string // To store the email for the code callback
}

// --- Messages ---
type emailProcessedMsg struct{ err error }
type codeProcessedMsg struct{ err error }

func newLoginModel(opts *LoginTUIOpts) loginModel {
	email := textinput.New()
	email.Placeholder = txtEmailPlaceholder
	email.Focus()
	email.CharLimit = 64
	email.Width = 64
	email.PromptStyle = focusedStyle
	email.TextStyle = focusedStyle
	email.PlaceholderStyle = placeholderStyle

	code := textinput.New()
	code.Placeholder = txtCodePlaceholder
	code.CharLimit = 8
	code.Width = 8
	code.PromptStyle = focusedStyle
	code.TextStyle = focusedStyle
	code.PlaceholderStyle = placeholderStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return loginModel{
		opts:        opts,
		currentView: emailView,
		emailInput:  email,
		codeInput:   code,
		spinner:     s,
	}
}

func (m loginModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Typing clears any stale error
		if m.emailInput.Focused() {
			m.errorMessage = ""
			m.emailInput, cmd = m.emailInput.Update(msg)
			cmds = append(cmds, cmd)
		} else if m.codeInput.Focused() {
			m.errorMessage = ""
			m.codeInput, cmd = m.codeInput.Update(msg)
			cmds = append(cmds, cmd)
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEsc:
			return m.handleEscapeKey()

		case tea.KeyEnter:
			if m.isLoading {
				return m, nil
			}

			switch m.currentView {
			case emailView:
				return m.submitEmail()

			case codeView:
				return m.submitCode()
			}
		}

	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		m.spinner, spinnerCmd = m.spinner.Update(msg)
		cmds = append(cmds, spinnerCmd)

	case emailProcessedMsg:
		return m.handleEmailMsg(msg)

	case codeProcessedMsg:
		return m.handleCodeMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, tea.Batch(cmds...)
}

func (m loginModel) handleEscapeKey() (tea.Model, tea.Cmd) {
	// From the code view, Esc goes back to the email view
	if m.currentView == codeView {
		m.currentView = emailView
		m.codeInput.Blur()
		m.emailInput.Focus()
		m.errorMessage = ""
		return m, textinput.Blink
	}

	return m, tea.Quit
}

func (m loginModel) submitEmail() (tea.Model, tea.Cmd) {
	m.errorMessage = ""

	emailVal := strings.TrimSpace(m.emailInput.Value())
	if !m.opts.EmailValidator(emailVal) {
		m.errorMessage = txtInvalidEmail
		return m, nil
	}

	m.isLoading = true
	m.message = txtRequestingCode
	m.submittedEmail = emailVal
	m.emailInput.Blur()

	return m, func() tea.Msg {
		err := m.opts.EmailSubmitHandler(m.submittedEmail)
		return emailProcessedMsg{err: err}
	}
}

func (m loginModel) submitCode() (tea.Model, tea.Cmd) {
	m.errorMessage = ""

	codeVal := strings.TrimSpace(m.codeInput.Value())
	if !m.opts.CodeValidator(codeVal) {
		m.errorMessage = txtInvalidCode
		return m, nil
	}

	m.isLoading = true
	m.message = txtVerifyingCode
	m.codeInput.Blur()

	return m, func() tea.Msg {
		err := m.opts.CodeSubmitHandler(m.submittedEmail, codeVal)
		return codeProcessedMsg{err: err}
	}
}

func (m loginModel) handleEmailMsg(msg emailProcessedMsg) (tea.Model, tea.Cmd) {
	m.isLoading = false

	if msg.err != nil {
		m.errorMessage = fmt.Sprintf("%s %s", errorHeaderStyle.Render("ERROR:"), msg.err.Error())
		m.emailInput.Focus()
		return m, textinput.Blink
	}

	m.currentView = codeView
	m.message = ""
	m.errorMessage = ""
	m.codeInput.Focus()

	return m, textinput.Blink
}

func (m loginModel) handleCodeMsg(msg codeProcessedMsg) (tea.Model, tea.Cmd) {
	m.isLoading = false

	if msg.err != nil {
		m.errorMessage = fmt.Sprintf("%s %s", errorHeaderStyle.Render("ERROR:"), msg.err.Error())
		m.codeInput.Focus()
		return m, textinput.Blink
	}

	// Verified. Quit the TUI.
	return m, tea.Quit
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(version.ShortWithApp()))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s%s\n", gray.Render("Server  "), green.Render(m.opts.ServerURL)))
	b.WriteString(fmt.Sprintf("%s%s\n", gray.Render("Token   "), green.Render(m.opts.TokenPath)))
	if m.opts.Note != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", yellow.Render(m.opts.Note)))
	}
	b.WriteString("\n")

	switch m.currentView {
	case emailView:
		m.renderEmailView(&b)
	case codeView:
		m.renderCodeView(&b)
	}
	m.renderLoadingView(&b)
	m.renderErrorView(&b)
	m.renderHelpView(&b)
	b.WriteString("\n")
	return b.String()
}

func (m loginModel) renderEmailView(b *strings.Builder) {
	b.WriteString(txtEmailPrompt)
	b.WriteString("\n\n")
	b.WriteString(m.emailInput.View())
}

func (m loginModel) renderCodeView(b *strings.Builder) {
	b.WriteString(fmt.Sprintf(txtCodePrompt, green.Render(m.submittedEmail)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(txtCodeInfo))
	b.WriteString("\n\n")
	b.WriteString(m.codeInput.View())
}

func (m loginModel) renderLoadingView(b *strings.Builder) {
	if m.isLoading {
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.message))
	}
}

func (m loginModel) renderErrorView(b *strings.Builder) {
	if m.errorMessage != "" {
		b.WriteString("\n\n")
		b.WriteString(errorTextStyle.Render(m.errorMessage))
	}
}

func (m loginModel) renderHelpView(b *strings.Builder) {
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(txtHelp))
}

// RunLoginTUI starts the Bubble Tea login interface and blocks until the flow
// completes, errors, or is cancelled.
func RunLoginTUI(opts LoginTUIOpts) error {
	model, err := tea.NewProgram(newLoginModel(&opts), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("login interface error: %w", err)
	}

	if fm, ok := model.(loginModel); ok {
		if fm.errorMessage != "" {
			return fmt.Errorf("login interrupted: %s", fm.errorMessage)
		}

		// Still on the email view means the user quit before verifying
		if fm.currentView == emailView {
			return fmt.Errorf("login cancelled by user")
		}
	}

	return nil
}
