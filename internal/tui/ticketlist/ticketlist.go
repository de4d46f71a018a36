// ABOUTME: Paginated ticket table as a bubbletea model
// ABOUTME: Wraps a bubbles table with an inline filter, paging, and selection

package ticketlist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/tui/icons"
	"github.com/1234-ad/ticketing-system/internal/tui/styles"
)

// SelectedMsg is sent when a ticket row is opened
type SelectedMsg struct {
	ID int64
}

// PageRequestMsg asks the parent to fetch another page
type PageRequestMsg struct {
	Page int
}

// BackMsg is sent when the user leaves the list
type BackMsg struct{}

// TicketList shows one page of tickets in a table with an inline filter
type TicketList struct {
	title     string
	page      *api.Page[api.Ticket]
	visible   []api.Ticket
	table     table.Model
	filter    textinput.Model
	filtering bool
	width     int
}

// New creates an empty list with the given screen title
func New(title string) *TicketList {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Status", Width: 12},
		{Title: "Priority", Width: 10},
		{Title: "Subject", Width: 40},
		{Title: "Assignee", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(styles.Text).
		Background(styles.Surface).
		Bold(true)
	t.SetStyles(s)

	filter := textinput.New()
	filter.Prompt = icons.Search.String() + " "
	filter.Placeholder = "filter by subject"
	filter.CharLimit = 80

	return &TicketList{title: title, table: t, filter: filter}
}

// SetPage replaces the table contents with a fetched page
func (l *TicketList) SetPage(page *api.Page[api.Ticket]) {
	l.page = page
	l.applyFilter()
}

// applyFilter rebuilds the visible rows from the page and filter text
func (l *TicketList) applyFilter() {
	if l.page == nil {
		return
	}

	query := strings.ToLower(strings.TrimSpace(l.filter.Value()))
	l.visible = l.visible[:0]
	for _, t := range l.page.Content {
		if query != "" && !strings.Contains(strings.ToLower(t.Subject), query) {
			continue
		}
		l.visible = append(l.visible, t)
	}

	rows := make([]table.Row, 0, len(l.visible))
	for _, t := range l.visible {
		assignee := "-"
		if t.AssignedTo != nil {
			assignee = t.AssignedTo.FullName()
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(t.ID, 10),
			string(t.Status),
			string(t.Priority),
			t.Subject,
			assignee,
		})
	}
	l.table.SetRows(rows)
	l.table.SetCursor(0)
}

// Selected returns the ticket under the cursor, or nil when nothing is shown
func (l *TicketList) Selected() *api.Ticket {
	if len(l.visible) == 0 {
		return nil
	}
	i := l.table.Cursor()
	if i < 0 || i >= len(l.visible) {
		return nil
	}
	return &l.visible[i]
}

// Init implements tea.Model
func (l *TicketList) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (l *TicketList) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		return l, nil

	case tea.KeyMsg:
		if l.filtering {
			return l.updateFilter(msg)
		}

		switch msg.String() {
		case "/":
			l.filtering = true
			l.filter.Focus()
			return l, textinput.Blink
		case "enter":
			if t := l.Selected(); t != nil {
				id := t.ID
				return l, func() tea.Msg { return SelectedMsg{ID: id} }
			}
			return l, nil
		case "n", "right":
			if l.page != nil && !l.page.Last {
				next := l.page.Number + 1
				return l, func() tea.Msg { return PageRequestMsg{Page: next} }
			}
			return l, nil
		case "p", "left":
			if l.page != nil && !l.page.First {
				prev := l.page.Number - 1
				return l, func() tea.Msg { return PageRequestMsg{Page: prev} }
			}
			return l, nil
		case "b", "esc":
			return l, func() tea.Msg { return BackMsg{} }
		}
	}

	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return l, cmd
}

// updateFilter routes keys into the filter input until enter or esc
func (l *TicketList) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		l.filtering = false
		l.filter.Blur()
		return l, nil
	case "esc":
		l.filtering = false
		l.filter.Blur()
		l.filter.SetValue("")
		l.applyFilter()
		return l, nil
	}

	var cmd tea.Cmd
	l.filter, cmd = l.filter.Update(msg)
	l.applyFilter()
	return l, cmd
}

// View implements tea.Model
func (l *TicketList) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(l.title))
	sb.WriteString("\n")

	if l.page == nil {
		sb.WriteString(styles.Subtitle.Render("Loading..."))
		return sb.String()
	}

	if l.filtering || l.filter.Value() != "" {
		sb.WriteString(l.filter.View())
		sb.WriteString("\n")
	}

	if len(l.visible) == 0 {
		sb.WriteString(styles.Subtitle.Render("No tickets found."))
		return sb.String()
	}

	sb.WriteString(l.table.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(fmt.Sprintf(
		"Page %d of %d (%d tickets)", l.page.Number+1, l.page.TotalPages, l.page.TotalElements)))

	return sb.String()
}
