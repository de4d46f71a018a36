// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, session lifecycle, and backend calls

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1234-ad/ticketing-system/internal/access"
	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/session"
	"github.com/1234-ad/ticketing-system/internal/tui/adminlist"
	"github.com/1234-ad/ticketing-system/internal/tui/authform"
	"github.com/1234-ad/ticketing-system/internal/tui/dashboard"
	"github.com/1234-ad/ticketing-system/internal/tui/detail"
	"github.com/1234-ad/ticketing-system/internal/tui/icons"
	"github.com/1234-ad/ticketing-system/internal/tui/menu"
	"github.com/1234-ad/ticketing-system/internal/tui/styles"
	"github.com/1234-ad/ticketing-system/internal/tui/ticketform"
	"github.com/1234-ad/ticketing-system/internal/tui/ticketlist"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenMenu
	ScreenDashboard
	ScreenTicketList
	ScreenTicketForm
	ScreenDetail
	ScreenAdmin
)

// Layout constants
const (
	minTerminalWidth = 80
	pageSize         = 20
)

// sessionRestoredMsg carries the result of the startup session check
type sessionRestoredMsg struct {
	state session.State
}

// signedInMsg is sent when login or registration completes
type signedInMsg struct {
	user *api.User
	err  error
}

// ticketsLoadedMsg carries a fetched ticket page
type ticketsLoadedMsg struct {
	page *api.Page[api.Ticket]
	err  error
}

// ticketLoadedMsg carries one fetched ticket
type ticketLoadedMsg struct {
	ticket *api.Ticket
	err    error
}

// ticketMutatedMsg is sent after a create, comment, status, or assign call
type ticketMutatedMsg struct {
	ticketID int64
	err      error
}

// usersLoadedMsg carries a fetched user page for the admin panel
type usersLoadedMsg struct {
	page *api.Page[api.User]
	err  error
}

// userMutatedMsg is sent after a role change or delete
type userMutatedMsg struct {
	err error
}

// App is the root model for the TUI
type App struct {
	client  *api.Client
	session *session.Manager
	screen  Screen
	width   int
	height  int
	err     error

	// Which ticket listing the list screen shows
	listAll    bool
	listPage   int
	lastUpdate time.Time
	loading    bool
	spin       spinner.Model

	// Child models
	auth    *authform.AuthForm
	menu    *menu.Menu
	dash    *dashboard.Dashboard
	list    *ticketlist.TicketList
	form    *ticketform.TicketForm
	detail  *detail.Detail
	admin   *adminlist.AdminList
	adminPg int
}

// New creates a new TUI application
func New(client *api.Client, sess *session.Manager) *App {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &App{
		client:  client,
		session: sess,
		screen:  ScreenAuth,
		auth:    authform.New(),
		spin:    spin,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.restoreSession(), a.auth.Init())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dash != nil {
			a.dash.SetWidth(a.contentWidth())
		}
		return a.forwardToScreen(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.screen == ScreenMenu && (msg.String() == "q") {
			return a, tea.Quit
		}
		return a.forwardToScreen(msg)

	case sessionRestoredMsg:
		if msg.state == session.Authenticated {
			return a.showMenu()
		}
		a.screen = ScreenAuth
		return a, nil

	case signedInMsg:
		if msg.err != nil {
			a.auth.SetError(requestFailure(msg.err))
			return a, a.auth.Init()
		}
		return a.showMenu()

	case authform.LoginMsg:
		return a, a.login(msg.Email, msg.Password)

	case authform.RegisterMsg:
		return a, a.register(msg.Req)

	case authform.CancelledMsg:
		return a, tea.Quit

	case menu.SelectedMsg:
		return a.openEntry(msg.Entry)

	case menu.CancelledMsg:
		return a, tea.Quit

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case ticketlist.SelectedMsg:
		return a, a.fetch(a.loadTicket(msg.ID))

	case ticketlist.PageRequestMsg:
		a.listPage = msg.Page
		return a, a.fetch(a.loadTickets(a.listAll, msg.Page))

	case ticketlist.BackMsg, detail.BackMsg, adminlist.BackMsg, ticketform.CancelledMsg:
		return a.backToMenu()

	case ticketform.CompleteMsg:
		return a, a.fetch(a.createTicket(msg.Req))

	case detail.CommentMsg:
		return a, a.fetch(a.postComment(msg.TicketID, msg.Content))

	case detail.StatusMsg:
		return a, a.fetch(a.changeStatus(msg.TicketID, msg.Status))

	case detail.AssignMsg:
		return a, a.fetch(a.assignTicket(msg.TicketID, msg.AssigneeID))

	case adminlist.RoleChangeMsg:
		return a, a.fetch(a.changeRole(msg.UserID, msg.Role))

	case adminlist.DeleteMsg:
		return a, a.fetch(a.deleteUser(msg.UserID))

	case adminlist.PageRequestMsg:
		a.adminPg = msg.Page
		return a, a.fetch(a.loadUsers(msg.Page))

	case ticketsLoadedMsg:
		a.loading = false
		if cmd, handled := a.handleError(msg.err); handled {
			return a, cmd
		}
		a.lastUpdate = time.Now()
		if a.screen == ScreenDashboard {
			a.dash = dashboard.New(msg.page, a.contentWidth())
			return a, nil
		}
		if a.list != nil {
			a.list.SetPage(msg.page)
		}
		return a, nil

	case ticketLoadedMsg:
		a.loading = false
		if cmd, handled := a.handleError(msg.err); handled {
			return a, cmd
		}
		if a.screen == ScreenDetail && a.detail != nil {
			a.detail.SetTicket(msg.ticket)
			return a, nil
		}
		a.detail = detail.New(msg.ticket, a.session.User())
		a.screen = ScreenDetail
		return a, nil

	case ticketMutatedMsg:
		a.loading = false
		if cmd, handled := a.handleError(msg.err); handled {
			return a, cmd
		}
		// Reload whatever the mutation touched
		if msg.ticketID > 0 {
			return a, a.fetch(a.loadTicket(msg.ticketID))
		}
		return a.backToMenu()

	case usersLoadedMsg:
		a.loading = false
		if cmd, handled := a.handleError(msg.err); handled {
			return a, cmd
		}
		a.lastUpdate = time.Now()
		if a.admin != nil {
			a.admin.SetPage(msg.page)
		}
		return a, nil

	case userMutatedMsg:
		a.loading = false
		if cmd, handled := a.handleError(msg.err); handled {
			return a, cmd
		}
		return a, a.fetch(a.loadUsers(a.adminPg))

	default:
		// Forward unknown messages to the active form screens
		// (needed for huh form internals)
		return a.forwardToScreen(msg)
	}
}

// fetch marks the app as loading and runs cmd alongside the spinner
func (a *App) fetch(cmd tea.Cmd) tea.Cmd {
	a.loading = true
	return tea.Batch(a.spin.Tick, cmd)
}

// handleError routes call failures. A 401 means the token is gone: the client
// already cleared the store and the session hook fired, so show the auth
// screen again. Other errors surface on the current screen.
func (a *App) handleError(err error) (tea.Cmd, bool) {
	if err == nil {
		a.err = nil
		return nil, false
	}
	if api.IsUnauthorized(err) {
		a.err = nil
		a.auth = authform.New()
		a.auth.SetError("Session expired. Sign in again.")
		a.screen = ScreenAuth
		a.menu = nil
		return a.auth.Init(), true
	}
	a.err = err
	return nil, true
}

func (a *App) forwardToScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenAuth:
		if a.auth == nil {
			return a, nil
		}
		model, cmd := a.auth.Update(msg)
		a.auth = model.(*authform.AuthForm)
		return a, cmd

	case ScreenMenu:
		if a.menu == nil {
			return a, nil
		}
		model, cmd := a.menu.Update(msg)
		a.menu = model.(*menu.Menu)
		return a, cmd

	case ScreenDashboard:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "r":
				return a, a.fetch(a.loadTickets(a.listAll, 0))
			case "b", "esc", "q":
				return a.backToMenu()
			}
		}
		return a, nil

	case ScreenTicketList:
		if a.list == nil {
			return a, nil
		}
		model, cmd := a.list.Update(msg)
		a.list = model.(*ticketlist.TicketList)
		return a, cmd

	case ScreenTicketForm:
		if a.form == nil {
			return a, nil
		}
		model, cmd := a.form.Update(msg)
		a.form = model.(*ticketform.TicketForm)
		return a, cmd

	case ScreenDetail:
		if a.detail == nil {
			return a, nil
		}
		model, cmd := a.detail.Update(msg)
		a.detail = model.(*detail.Detail)
		return a, cmd

	case ScreenAdmin:
		if a.admin == nil {
			return a, nil
		}
		model, cmd := a.admin.Update(msg)
		a.admin = model.(*adminlist.AdminList)
		return a, cmd
	}

	return a, nil
}

func (a *App) showMenu() (tea.Model, tea.Cmd) {
	user := a.session.User()
	if user == nil {
		a.screen = ScreenAuth
		return a, nil
	}
	a.menu = menu.New(user)
	a.screen = ScreenMenu
	a.err = nil
	return a, nil
}

func (a *App) backToMenu() (tea.Model, tea.Cmd) {
	a.list = nil
	a.form = nil
	a.detail = nil
	a.admin = nil
	a.dash = nil
	a.err = nil
	return a.showMenu()
}

func (a *App) openEntry(entry access.Entry) (tea.Model, tea.Cmd) {
	user := a.session.User()
	if user == nil || !access.Visible(entry, user.Role) {
		return a, nil
	}

	switch entry {
	case access.EntryDashboard:
		a.screen = ScreenDashboard
		a.dash = nil
		a.listAll = access.Visible(access.EntryAllTickets, user.Role)
		return a, a.fetch(a.loadTickets(a.listAll, 0))

	case access.EntryMyTickets:
		a.screen = ScreenTicketList
		a.listAll = false
		a.listPage = 0
		a.list = ticketlist.New("My Tickets")
		return a, a.fetch(a.loadTickets(false, 0))

	case access.EntryAllTickets:
		a.screen = ScreenTicketList
		a.listAll = true
		a.listPage = 0
		a.list = ticketlist.New("All Tickets")
		return a, a.fetch(a.loadTickets(true, 0))

	case access.EntryCreateTicket:
		a.screen = ScreenTicketForm
		a.form = ticketform.New()
		return a, a.form.Init()

	case access.EntryAdminPanel:
		a.screen = ScreenAdmin
		a.adminPg = 0
		a.admin = adminlist.New(user)
		return a, a.fetch(a.loadUsers(0))
	}

	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	if a.err != nil {
		content = styles.StatusCritical.Render("Error: "+a.err.Error()) +
			"\n\n" + styles.Help.Render("b Back, q Quit")
	} else {
		switch a.screen {
		case ScreenAuth:
			content = a.auth.View()
		case ScreenMenu:
			content = a.viewMenu()
		case ScreenDashboard:
			content = a.viewDashboard()
		case ScreenTicketList:
			content = a.viewChild(a.list != nil, func() string { return a.list.View() })
		case ScreenTicketForm:
			content = a.viewChild(a.form != nil, func() string { return a.form.View() })
		case ScreenDetail:
			content = a.viewChild(a.detail != nil, func() string { return a.detail.View() })
		case ScreenAdmin:
			content = a.viewChild(a.admin != nil, func() string { return a.admin.View() })
		default:
			content = a.viewMenu()
		}
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewMenu() string {
	if a.menu != nil {
		return a.menu.View()
	}
	return ""
}

func (a *App) viewDashboard() string {
	if a.dash == nil {
		return styles.Panel.Width(a.contentWidth()).Render(a.spin.View() + " Loading...")
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.dash.View())
}

func (a *App) viewChild(ok bool, view func() string) string {
	if !ok {
		return ""
	}
	return view()
}

func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - 4
	}
	return a.width - 4
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Helpdesk"))

	rightText := ""
	if user := a.session.User(); user != nil && a.screen != ScreenAuth {
		rightText = contextStyle.Render(fmt.Sprintf("%s (%s)", user.FullName(), user.Role)) + " "
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	fillWidth := width - 4 - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftRendered + strings.Repeat("─", fillWidth) + rightRendered + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenAuth:
		shortcuts = []string{"Tab Switch-mode", "Enter Submit", "Esc Quit"}
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenDashboard:
		shortcuts = []string{"r Refresh", "b Back"}
	case ScreenTicketList:
		shortcuts = []string{"↑↓ Navigate", "Enter Open", "←/→ Page", "b Back"}
	case ScreenTicketForm:
		shortcuts = []string{"Enter Next", "Esc Cancel"}
	case ScreenDetail:
		shortcuts = []string{"c Comment", "b Back"}
	case ScreenAdmin:
		shortcuts = []string{"r Role", "d Delete", "←/→ Page", "b Back"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen != ScreenAuth && a.screen != ScreenMenu {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlainText) - lipgloss.Width(rightPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// requestFailure shortens request errors for display above a form
func requestFailure(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func (a *App) restoreSession() tea.Cmd {
	return func() tea.Msg {
		return sessionRestoredMsg{state: a.session.Restore(context.Background())}
	}
}

func (a *App) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := a.session.Login(context.Background(), email, password)
		return signedInMsg{user: user, err: err}
	}
}

func (a *App) register(req api.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		user, err := a.session.Register(context.Background(), req)
		return signedInMsg{user: user, err: err}
	}
}

func (a *App) loadTickets(all bool, page int) tea.Cmd {
	return func() tea.Msg {
		filters := &api.TicketFilters{Page: page, Size: pageSize}
		var p *api.Page[api.Ticket]
		var err error
		if all {
			p, err = a.client.AllTickets(context.Background(), filters)
		} else {
			p, err = a.client.MyTickets(context.Background(), filters)
		}
		return ticketsLoadedMsg{page: p, err: err}
	}
}

func (a *App) loadTicket(id int64) tea.Cmd {
	return func() tea.Msg {
		ticket, err := a.client.Ticket(context.Background(), id)
		return ticketLoadedMsg{ticket: ticket, err: err}
	}
}

func (a *App) createTicket(req api.TicketRequest) tea.Cmd {
	return func() tea.Msg {
		ticket, err := a.client.CreateTicket(context.Background(), req)
		if err != nil {
			return ticketMutatedMsg{err: err}
		}
		return ticketMutatedMsg{ticketID: ticket.ID}
	}
}

func (a *App) postComment(ticketID int64, content string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.AddComment(context.Background(), ticketID, content)
		return ticketMutatedMsg{ticketID: ticketID, err: err}
	}
}

func (a *App) changeStatus(ticketID int64, status api.TicketStatus) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.UpdateTicketStatus(context.Background(), ticketID, status)
		return ticketMutatedMsg{ticketID: ticketID, err: err}
	}
}

func (a *App) assignTicket(ticketID, assigneeID int64) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.AssignTicket(context.Background(), ticketID, assigneeID)
		return ticketMutatedMsg{ticketID: ticketID, err: err}
	}
}

func (a *App) loadUsers(page int) tea.Cmd {
	return func() tea.Msg {
		p, err := a.client.Users(context.Background(), page, pageSize)
		return usersLoadedMsg{page: p, err: err}
	}
}

func (a *App) changeRole(userID int64, role api.Role) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.UpdateUserRole(context.Background(), userID, role)
		return userMutatedMsg{err: err}
	}
}

func (a *App) deleteUser(userID int64) tea.Cmd {
	return func() tea.Msg {
		err := a.client.DeleteUser(context.Background(), userID)
		return userMutatedMsg{err: err}
	}
}

// Run starts the TUI
func Run(client *api.Client, sess *session.Manager) error {
	app := New(client, sess)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
