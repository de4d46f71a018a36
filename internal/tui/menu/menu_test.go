// ABOUTME: Tests for the navigation menu
// ABOUTME: Verifies role-based entry filtering and keyboard navigation

package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1234-ad/ticketing-system/internal/access"
	"github.com/1234-ad/ticketing-system/internal/api"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestMenuEntriesPerRole(t *testing.T) {
	tests := []struct {
		role api.Role
		want int
	}{
		{api.RoleUser, 3},
		{api.RoleSupportAgent, 4},
		{api.RoleAdmin, 5},
	}

	for _, tt := range tests {
		m := New(&api.User{ID: 1, Role: tt.role})
		if len(m.Entries()) != tt.want {
			t.Errorf("role %s: expected %d entries, got %d", tt.role, tt.want, len(m.Entries()))
		}
	}
}

func TestMenuUserNeverSeesAdminPanel(t *testing.T) {
	m := New(&api.User{ID: 1, Role: api.RoleUser})
	for _, e := range m.Entries() {
		if e == access.EntryAdminPanel || e == access.EntryAllTickets {
			t.Errorf("USER role must not see %s", e)
		}
	}
}

func TestMenuSelection(t *testing.T) {
	m := New(&api.User{ID: 1, FirstName: "Jane", LastName: "Doe", Role: api.RoleAdmin})

	// Move to the second entry and select it
	m.Update(key("down"))
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected a command carrying the selection")
	}

	msg, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", cmd())
	}
	if msg.Entry != access.EntryMyTickets {
		t.Errorf("expected My Tickets, got %s", msg.Entry)
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := New(&api.User{ID: 1, Role: api.RoleUser})

	m.Update(key("up"))
	if m.cursor != 0 {
		t.Errorf("cursor must not go above the first entry, got %d", m.cursor)
	}

	for i := 0; i < 10; i++ {
		m.Update(key("down"))
	}
	if m.cursor != len(m.Entries())-1 {
		t.Errorf("cursor must stop at the last entry, got %d", m.cursor)
	}
}

func TestMenuQuit(t *testing.T) {
	m := New(&api.User{ID: 1, Role: api.RoleUser})

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Errorf("expected CancelledMsg, got %T", cmd())
	}
}

func TestMenuViewShowsUserAndEntries(t *testing.T) {
	m := New(&api.User{ID: 1, FirstName: "Jane", LastName: "Doe", Role: api.RoleAdmin})

	view := m.View()
	if !strings.Contains(view, "Jane Doe") {
		t.Error("expected greeting with user name")
	}
	for _, e := range m.Entries() {
		if !strings.Contains(view, string(e)) {
			t.Errorf("expected entry %s in view", e)
		}
	}
}
