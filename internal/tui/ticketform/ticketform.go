// ABOUTME: New-ticket form as a bubbletea model
// ABOUTME: Collects subject, description, and priority via a huh form

package ticketform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/tui/styles"
)

// CompleteMsg is sent when the form is submitted
type CompleteMsg struct {
	Req api.TicketRequest
}

// CancelledMsg is sent when the user backs out of the form
type CancelledMsg struct{}

// TicketForm collects a new ticket
type TicketForm struct {
	form  *huh.Form
	width int

	subject     string
	description string
	priority    string
}

var priorityOptions = []huh.Option[string]{
	huh.NewOption("Low", string(api.PriorityLow)),
	huh.NewOption("Medium", string(api.PriorityMedium)),
	huh.NewOption("High", string(api.PriorityHigh)),
	huh.NewOption("Urgent", string(api.PriorityUrgent)),
}

// New creates the ticket form with medium priority preselected
func New() *TicketForm {
	t := &TicketForm{priority: string(api.PriorityMedium)}
	t.form = t.createForm()
	return t
}

func (t *TicketForm) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Placeholder("Short summary of the problem").
				CharLimit(200).
				Value(&t.subject).
				Validate(requireField("subject")),
			huh.NewText().
				Title("Description").
				Placeholder("What happened, and what did you expect?").
				Value(&t.description).
				Validate(requireField("description")),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions...).
				Value(&t.priority),
		).Title("New Ticket"),
	).WithTheme(createTheme())
}

func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Primary).
		SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}

func requireField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// Init implements tea.Model
func (t *TicketForm) Init() tea.Cmd {
	return t.form.Init()
}

// Update implements tea.Model
func (t *TicketForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return t, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		priority, err := api.ParsePriority(t.priority)
		if err != nil {
			priority = api.PriorityMedium
		}
		req := api.TicketRequest{
			Subject:     t.subject,
			Description: t.description,
			Priority:    priority,
		}
		return t, func() tea.Msg { return CompleteMsg{Req: req} }
	}

	return t, cmd
}

// View implements tea.Model
func (t *TicketForm) View() string {
	return t.form.View()
}
