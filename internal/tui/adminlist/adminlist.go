// ABOUTME: Admin user table as a bubbletea model
// ABOUTME: Lists accounts with role change and delete actions, self-guarded

package adminlist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1234-ad/ticketing-system/internal/access"
	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/tui/icons"
	"github.com/1234-ad/ticketing-system/internal/tui/styles"
)

// RoleChangeMsg asks the parent to change a user's role
type RoleChangeMsg struct {
	UserID int64
	Role   api.Role
}

// DeleteMsg asks the parent to delete a user
type DeleteMsg struct {
	UserID int64
}

// PageRequestMsg asks the parent to fetch another page
type PageRequestMsg struct {
	Page int
}

// BackMsg is sent when the admin leaves the panel
type BackMsg struct{}

// AdminList shows one page of user accounts
type AdminList struct {
	actor  *api.User
	page   *api.Page[api.User]
	table  table.Model
	form   *huh.Form
	role   string
	notice string
	width  int
}

var roleOptions = []huh.Option[string]{
	huh.NewOption("User", string(api.RoleUser)),
	huh.NewOption("Support Agent", string(api.RoleSupportAgent)),
	huh.NewOption("Admin", string(api.RoleAdmin)),
}

// New creates the admin panel for the acting admin
func New(actor *api.User) *AdminList {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Username", Width: 16},
		{Title: "Email", Width: 28},
		{Title: "Role", Width: 14},
		{Title: "Name", Width: 20},
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

	return &AdminList{actor: actor, table: t}
}

// SetPage replaces the table contents with a fetched page
func (a *AdminList) SetPage(page *api.Page[api.User]) {
	a.page = page
	a.notice = ""

	rows := make([]table.Row, 0, len(page.Content))
	for _, u := range page.Content {
		name := u.FullName()
		if u.ID == a.actor.ID {
			name += " (you)"
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(u.ID, 10),
			u.Username,
			u.Email,
			string(u.Role),
			name,
		})
	}
	a.table.SetRows(rows)
	a.table.SetCursor(0)
}

// Selected returns the user under the cursor, or nil when the page is empty
func (a *AdminList) Selected() *api.User {
	if a.page == nil || len(a.page.Content) == 0 {
		return nil
	}
	i := a.table.Cursor()
	if i < 0 || i >= len(a.page.Content) {
		return nil
	}
	return &a.page.Content[i]
}

func (a *AdminList) startRoleForm(target *api.User) tea.Cmd {
	a.role = string(target.Role)
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Role for %s", target.Username)).
				Options(roleOptions...).
				Value(&a.role),
		),
	).WithTheme(huh.ThemeBase())
	return a.form.Init()
}

// Init implements tea.Model
func (a *AdminList) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *AdminList) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = sizeMsg.Width
	}

	if a.form != nil {
		return a.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "r":
			target := a.Selected()
			if target == nil {
				return a, nil
			}
			if !access.CanChangeRole(a.actor, target) {
				a.notice = "You cannot change your own role; ask another admin."
				return a, nil
			}
			return a, a.startRoleForm(target)

		case "d":
			target := a.Selected()
			if target == nil {
				return a, nil
			}
			if !access.CanDeleteUser(a.actor, target) {
				a.notice = "You cannot delete your own account."
				return a, nil
			}
			id := target.ID
			return a, func() tea.Msg { return DeleteMsg{UserID: id} }

		case "n", "right":
			if a.page != nil && !a.page.Last {
				next := a.page.Number + 1
				return a, func() tea.Msg { return PageRequestMsg{Page: next} }
			}
			return a, nil
		case "p", "left":
			if a.page != nil && !a.page.First {
				prev := a.page.Number - 1
				return a, func() tea.Msg { return PageRequestMsg{Page: prev} }
			}
			return a, nil
		case "b", "esc":
			return a, func() tea.Msg { return BackMsg{} }
		}
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a *AdminList) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		a.form = nil
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.form = nil
		target := a.Selected()
		role, err := api.ParseRole(a.role)
		if target == nil || err != nil {
			return a, nil
		}
		id := target.ID
		return a, func() tea.Msg { return RoleChangeMsg{UserID: id, Role: role} }
	}

	return a, cmd
}

// View implements tea.Model
func (a *AdminList) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Admin Panel", icons.Shield.String())))
	sb.WriteString("\n")

	if a.notice != "" {
		sb.WriteString(styles.StatusWarning.Render(a.notice))
		sb.WriteString("\n")
	}

	if a.page == nil {
		sb.WriteString(styles.Subtitle.Render("Loading..."))
		return sb.String()
	}
	if len(a.page.Content) == 0 {
		sb.WriteString(styles.Subtitle.Render("No users found."))
		return sb.String()
	}

	sb.WriteString(a.table.View())
	sb.WriteString("\n")

	if a.form != nil {
		sb.WriteString("\n")
		sb.WriteString(a.form.View())
		return sb.String()
	}

	sb.WriteString(styles.Help.Render(fmt.Sprintf(
		"r Role, d Delete, ←/→ Page, b Back  |  Page %d of %d", a.page.Number+1, a.page.TotalPages)))

	return sb.String()
}
