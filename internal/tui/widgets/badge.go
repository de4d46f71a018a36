// ABOUTME: Status, priority, and role badge widgets
// ABOUTME: Provides colored inline badges for ticket and user attributes

package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/1234-ad/ticketing-system/internal/api"
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored badge with the given background and foreground
func Badge(text string, bg, fg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// StatusBadge renders a badge for a ticket status
func StatusBadge(status api.TicketStatus) string {
	switch status {
	case api.StatusOpen:
		return Badge("OPEN", BadgeInfoBg, BadgeInfoFg)
	case api.StatusInProgress:
		return Badge("IN PROGRESS", BadgeWarnBg, BadgeWarnFg)
	case api.StatusResolved:
		return Badge("RESOLVED", BadgeOKBg, BadgeOKFg)
	case api.StatusClosed:
		return Badge("CLOSED", BadgeNeutralBg, BadgeNeutralFg)
	default:
		return Badge(string(status), BadgeNeutralBg, BadgeNeutralFg)
	}
}

// PriorityBadge renders a badge for a ticket priority
func PriorityBadge(priority api.Priority) string {
	switch priority {
	case api.PriorityLow:
		return Badge("LOW", BadgeNeutralBg, BadgeNeutralFg)
	case api.PriorityMedium:
		return Badge("MEDIUM", BadgeInfoBg, BadgeInfoFg)
	case api.PriorityHigh:
		return Badge("HIGH", BadgeWarnBg, BadgeWarnFg)
	case api.PriorityUrgent:
		return Badge("URGENT", BadgeCritBg, BadgeCritFg)
	default:
		return Badge(string(priority), BadgeNeutralBg, BadgeNeutralFg)
	}
}

// RoleBadge renders a badge for a user role
func RoleBadge(role api.Role) string {
	switch role {
	case api.RoleAdmin:
		return Badge("ADMIN", BadgeCritBg, BadgeCritFg)
	case api.RoleSupportAgent:
		return Badge("AGENT", BadgeInfoBg, BadgeInfoFg)
	case api.RoleUser:
		return Badge("USER", BadgeNeutralBg, BadgeNeutralFg)
	default:
		return Badge(string(role), BadgeNeutralBg, BadgeNeutralFg)
	}
}
