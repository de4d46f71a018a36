// ABOUTME: Navigation menu as a bubbletea model
// ABOUTME: Shows only the entries the signed-in user's role may open

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1234-ad/ticketing-system/internal/access"
	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/tui/icons"
	"github.com/1234-ad/ticketing-system/internal/tui/styles"
)

// SelectedMsg is sent when the user picks a menu entry
type SelectedMsg struct {
	Entry access.Entry
}

// CancelledMsg is sent when the user quits from the menu
type CancelledMsg struct{}

// Menu is the navigation menu for a signed-in user
type Menu struct {
	user    *api.User
	entries []access.Entry
	cursor  int
	width   int
}

// New builds the menu for the given user's role
func New(user *api.User) *Menu {
	return &Menu{
		user:    user,
		entries: access.NavigationFor(user.Role),
	}
}

// Entries returns the visible entries, in display order
func (m *Menu) Entries() []access.Entry {
	return m.entries
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			entry := m.entries[m.cursor]
			return m, func() tea.Msg { return SelectedMsg{Entry: entry} }
		case "q", "esc":
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}

	return m, nil
}

func entryIcon(entry access.Entry) string {
	switch entry {
	case access.EntryDashboard:
		return icons.Chart.String()
	case access.EntryMyTickets, access.EntryAllTickets:
		return icons.Ticket.String()
	case access.EntryCreateTicket:
		return icons.Create.String()
	case access.EntryAdminPanel:
		return icons.Shield.String()
	default:
		return icons.App.String()
	}
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Welcome, %s", icons.User.String(), m.user.FullName())))
	sb.WriteString("\n\n")

	for i, entry := range m.entries {
		line := fmt.Sprintf("%s %s", entryIcon(entry), string(entry))
		if i == m.cursor {
			sb.WriteString(styles.SelectedRow.Render("> " + line))
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render("↑/↓ navigate, Enter select, q quit"))
	return sb.String()
}
