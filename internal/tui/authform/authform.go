// ABOUTME: Sign-in and sign-up forms as a bubbletea model
// ABOUTME: Uses huh forms with a mode toggle between login and register

package authform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/tui/styles"
)

// LoginMsg is sent when the login form is submitted
type LoginMsg struct {
	Email    string
	Password string
}

// RegisterMsg is sent when the register form is submitted
type RegisterMsg struct {
	Req api.RegisterRequest
}

// CancelledMsg is sent when the user backs out of the form
type CancelledMsg struct{}

// Mode selects which form is shown
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// AuthForm collects credentials for sign-in or sign-up
type AuthForm struct {
	mode  Mode
	form  *huh.Form
	width int
	err   string

	email    string
	password string
	username string
	first    string
	last     string
}

// createTheme returns a huh theme matching the application palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}

// New creates the auth form in login mode
func New() *AuthForm {
	a := &AuthForm{mode: ModeLogin}
	a.form = a.createLoginForm()
	return a
}

func requireField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func (a *AuthForm) createLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&a.email).
				Validate(requireField("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&a.password).
				Validate(requireField("password")),
		).Title("Sign In").
			Description("Press Tab to switch to registration"),
	).WithTheme(createTheme())
}

func (a *AuthForm) createRegisterForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&a.username).
				Validate(requireField("username")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&a.email).
				Validate(requireField("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&a.password).
				Validate(requireField("password")),
			huh.NewInput().
				Title("First name").
				Value(&a.first).
				Validate(requireField("first name")),
			huh.NewInput().
				Title("Last name").
				Value(&a.last).
				Validate(requireField("last name")),
		).Title("Create Account").
			Description("Press Tab to switch back to sign in"),
	).WithTheme(createTheme())
}

// SetError shows an error above the form, e.g. a rejected sign-in
func (a *AuthForm) SetError(msg string) {
	a.err = msg
	// Rebuild so the completed form can be submitted again
	if a.mode == ModeLogin {
		a.form = a.createLoginForm()
	} else {
		a.form = a.createRegisterForm()
	}
}

// Mode returns the current form mode
func (a *AuthForm) Mode() Mode {
	return a.mode
}

// Init implements tea.Model
func (a *AuthForm) Init() tea.Cmd {
	return a.form.Init()
}

// Update implements tea.Model
func (a *AuthForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return a, func() tea.Msg { return CancelledMsg{} }
		case "tab":
			// Toggle between login and register
			if a.mode == ModeLogin {
				a.mode = ModeRegister
				a.form = a.createRegisterForm()
			} else {
				a.mode = ModeLogin
				a.form = a.createLoginForm()
			}
			a.err = ""
			return a, a.form.Init()
		}
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		return a.submit()
	}

	return a, cmd
}

func (a *AuthForm) submit() (tea.Model, tea.Cmd) {
	if a.mode == ModeLogin {
		email, password := a.email, a.password
		return a, func() tea.Msg {
			return LoginMsg{Email: email, Password: password}
		}
	}

	req := api.RegisterRequest{
		Username:  a.username,
		Email:     a.email,
		Password:  a.password,
		FirstName: a.first,
		LastName:  a.last,
	}
	return a, func() tea.Msg {
		return RegisterMsg{Req: req}
	}
}

// View implements tea.Model
func (a *AuthForm) View() string {
	var sb strings.Builder

	if a.err != "" {
		sb.WriteString(styles.StatusCritical.Render(a.err))
		sb.WriteString("\n\n")
	}
	sb.WriteString(a.form.View())

	return sb.String()
}
