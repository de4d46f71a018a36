// ABOUTME: Role-gated navigation table and self-edit guards
// ABOUTME: Single capability table consumed by both CLI and TUI

package access

import "github.com/1234-ad/ticketing-system/internal/api"

// Entry is a navigation destination in the UI.
type Entry string

const (
	EntryDashboard    Entry = "Dashboard"
	EntryMyTickets    Entry = "My Tickets"
	EntryCreateTicket Entry = "Create Ticket"
	EntryAllTickets   Entry = "All Tickets"
	EntryAdminPanel   Entry = "Admin Panel"
)

type navEntry struct {
	entry Entry
	roles []api.Role
}

// navigation is the single source of truth for which roles see which entries.
// Order matches the UI's sidebar.
var navigation = []navEntry{
	{EntryDashboard, []api.Role{api.RoleUser, api.RoleSupportAgent, api.RoleAdmin}},
	{EntryMyTickets, []api.Role{api.RoleUser, api.RoleSupportAgent, api.RoleAdmin}},
	{EntryCreateTicket, []api.Role{api.RoleUser, api.RoleSupportAgent, api.RoleAdmin}},
	{EntryAllTickets, []api.Role{api.RoleSupportAgent, api.RoleAdmin}},
	{EntryAdminPanel, []api.Role{api.RoleAdmin}},
}

// Visible reports whether role may see entry.
func Visible(entry Entry, role api.Role) bool {
	for _, n := range navigation {
		if n.entry != entry {
			continue
		}
		for _, r := range n.roles {
			if r == role {
				return true
			}
		}
		return false
	}
	return false
}

// NavigationFor returns the entries visible to role, in sidebar order.
func NavigationFor(role api.Role) []Entry {
	var entries []Entry
	for _, n := range navigation {
		if Visible(n.entry, role) {
			entries = append(entries, n.entry)
		}
	}
	return entries
}

// Entries returns every navigation entry, in sidebar order.
func Entries() []Entry {
	all := make([]Entry, len(navigation))
	for i, n := range navigation {
		all[i] = n.entry
	}
	return all
}

// CanChangeRole reports whether actor may change target's role. Admins may
// change anyone's role except their own: the guard prevents accidental
// self-lockout, the backend enforces the real boundary.
func CanChangeRole(actor, target *api.User) bool {
	if actor == nil || target == nil {
		return false
	}
	return actor.Role == api.RoleAdmin && actor.ID != target.ID
}

// CanDeleteUser reports whether actor may delete target. Same self-guard as
// role changes.
func CanDeleteUser(actor, target *api.User) bool {
	if actor == nil || target == nil {
		return false
	}
	return actor.Role == api.RoleAdmin && actor.ID != target.ID
}
