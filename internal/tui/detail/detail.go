// ABOUTME: Ticket detail screen as a bubbletea model
// ABOUTME: Shows one ticket with comments and embeds forms for agent actions

package detail

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1234-ad/ticketing-system/internal/access"
	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/tui/icons"
	"github.com/1234-ad/ticketing-system/internal/tui/styles"
	"github.com/1234-ad/ticketing-system/internal/tui/widgets"
)

// CommentMsg asks the parent to post a comment
type CommentMsg struct {
	TicketID int64
	Content  string
}

// StatusMsg asks the parent to change the ticket's status
type StatusMsg struct {
	TicketID int64
	Status   api.TicketStatus
}

// AssignMsg asks the parent to assign the ticket
type AssignMsg struct {
	TicketID   int64
	AssigneeID int64
}

// BackMsg is sent when the user leaves the detail screen
type BackMsg struct{}

// formKind tracks which embedded form is active
type formKind int

const (
	formNone formKind = iota
	formComment
	formStatus
	formAssign
)

// Detail shows one ticket and routes agent actions
type Detail struct {
	ticket *api.Ticket
	viewer *api.User
	form   *huh.Form
	active formKind
	width  int

	comment  string
	status   string
	assignee string
}

// New creates the detail screen for a ticket as seen by viewer
func New(ticket *api.Ticket, viewer *api.User) *Detail {
	return &Detail{ticket: ticket, viewer: viewer}
}

// SetTicket replaces the displayed ticket after a refresh
func (d *Detail) SetTicket(ticket *api.Ticket) {
	d.ticket = ticket
}

// Ticket returns the displayed ticket
func (d *Detail) Ticket() *api.Ticket {
	return d.ticket
}

// agentActions reports whether the viewer may triage this ticket
func (d *Detail) agentActions() bool {
	return d.viewer != nil && access.Visible(access.EntryAllTickets, d.viewer.Role)
}

var statusOptions = []huh.Option[string]{
	huh.NewOption("Open", string(api.StatusOpen)),
	huh.NewOption("In Progress", string(api.StatusInProgress)),
	huh.NewOption("Resolved", string(api.StatusResolved)),
	huh.NewOption("Closed", string(api.StatusClosed)),
}

func (d *Detail) startCommentForm() tea.Cmd {
	d.comment = ""
	d.active = formComment
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Add Comment").
				Value(&d.comment).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("comment is required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeBase())
	return d.form.Init()
}

func (d *Detail) startStatusForm() tea.Cmd {
	d.status = string(d.ticket.Status)
	d.active = formStatus
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("New Status").
				Options(statusOptions...).
				Value(&d.status),
		),
	).WithTheme(huh.ThemeBase())
	return d.form.Init()
}

func (d *Detail) startAssignForm() tea.Cmd {
	d.assignee = ""
	d.active = formAssign
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Assignee user ID").
				Placeholder("e.g., 42").
				CharLimit(10).
				Value(&d.assignee).
				Validate(func(s string) error {
					if _, err := strconv.ParseInt(s, 10, 64); err != nil {
						return fmt.Errorf("must be a user ID")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeBase())
	return d.form.Init()
}

// Init implements tea.Model
func (d *Detail) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (d *Detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		d.width = sizeMsg.Width
	}

	if d.active != formNone {
		return d.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "c":
			return d, d.startCommentForm()
		case "s":
			if d.agentActions() {
				return d, d.startStatusForm()
			}
		case "a":
			if d.agentActions() {
				return d, d.startAssignForm()
			}
		case "b", "esc":
			return d, func() tea.Msg { return BackMsg{} }
		}
	}

	return d, nil
}

func (d *Detail) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		d.active = formNone
		d.form = nil
		return d, nil
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		return d.submitForm()
	}

	return d, cmd
}

func (d *Detail) submitForm() (tea.Model, tea.Cmd) {
	kind := d.active
	d.active = formNone
	d.form = nil

	id := d.ticket.ID
	switch kind {
	case formComment:
		content := d.comment
		return d, func() tea.Msg { return CommentMsg{TicketID: id, Content: content} }

	case formStatus:
		status, err := api.ParseTicketStatus(d.status)
		if err != nil {
			return d, nil
		}
		return d, func() tea.Msg { return StatusMsg{TicketID: id, Status: status} }

	case formAssign:
		assigneeID, err := strconv.ParseInt(d.assignee, 10, 64)
		if err != nil {
			return d, nil
		}
		return d, func() tea.Msg { return AssignMsg{TicketID: id, AssigneeID: assigneeID} }
	}

	return d, nil
}

// View implements tea.Model
func (d *Detail) View() string {
	var sb strings.Builder

	t := d.ticket
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Ticket #%d: %s", icons.Ticket.String(), t.ID, t.Subject)))
	sb.WriteString("\n")
	sb.WriteString(widgets.StatusBadge(t.Status))
	sb.WriteString(" ")
	sb.WriteString(widgets.PriorityBadge(t.Priority))
	sb.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(styles.Muted)
	sb.WriteString(label.Render("Reporter: ") + t.CreatedBy.FullName() + "\n")
	assignee := "unassigned"
	if t.AssignedTo != nil {
		assignee = t.AssignedTo.FullName()
	}
	sb.WriteString(label.Render("Assignee: ") + assignee + "\n")
	sb.WriteString(label.Render("Created:  ") + t.CreatedAt + "\n\n")

	sb.WriteString(t.Description)
	sb.WriteString("\n")

	if len(t.Attachments) > 0 {
		sb.WriteString("\n" + styles.Subtitle.Render(fmt.Sprintf("%s Attachments", icons.Attachment.String())) + "\n")
		for _, a := range t.Attachments {
			sb.WriteString(fmt.Sprintf("  #%d %s (%d bytes)\n", a.ID, a.FileName, a.FileSize))
		}
	}

	if len(t.Comments) > 0 {
		sb.WriteString("\n" + styles.Subtitle.Render(fmt.Sprintf("%s Comments", icons.Comment.String())) + "\n")
		for _, c := range t.Comments {
			sb.WriteString(fmt.Sprintf("[%s] %s\n  %s\n", c.CreatedAt, c.CreatedBy.FullName(), c.Content))
		}
	}

	if d.active != formNone && d.form != nil {
		sb.WriteString("\n")
		sb.WriteString(d.form.View())
		return sb.String()
	}

	help := "c Comment, b Back"
	if d.agentActions() {
		help = "c Comment, s Status, a Assign, b Back"
	}
	sb.WriteString(styles.Help.Render(help))

	return sb.String()
}
