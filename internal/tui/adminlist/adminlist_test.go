// ABOUTME: Tests for the admin user table
// ABOUTME: Verifies self-guards and the delete and page navigation messages

package adminlist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1234-ad/ticketing-system/internal/api"
)

var admin = api.User{ID: 2, Username: "root", FirstName: "Ada", LastName: "Root", Role: api.RoleAdmin}

func userPage(users ...api.User) *api.Page[api.User] {
	return &api.Page[api.User]{
		Content:       users,
		TotalElements: int64(len(users)),
		TotalPages:    1,
		First:         true,
		Last:          true,
	}
}

func keyRune(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestDeleteOtherUser(t *testing.T) {
	a := New(&admin)
	a.SetPage(userPage(api.User{ID: 1, Username: "jdoe", Role: api.RoleUser}, admin))

	_, cmd := a.Update(keyRune("d"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(DeleteMsg)
	if !ok {
		t.Fatalf("expected DeleteMsg, got %T", cmd())
	}
	if msg.UserID != 1 {
		t.Errorf("expected user 1, got %d", msg.UserID)
	}
}

func TestDeleteSelfBlocked(t *testing.T) {
	a := New(&admin)
	a.SetPage(userPage(admin))

	_, cmd := a.Update(keyRune("d"))
	if cmd != nil {
		t.Error("deleting yourself must not emit a command")
	}
	if !strings.Contains(a.View(), "cannot delete your own account") {
		t.Error("expected self-guard notice in view")
	}
}

func TestRoleChangeSelfBlocked(t *testing.T) {
	a := New(&admin)
	a.SetPage(userPage(admin))

	_, cmd := a.Update(keyRune("r"))
	if cmd != nil {
		t.Error("changing your own role must not open the form")
	}
	if a.form != nil {
		t.Error("role form must stay closed for your own row")
	}
	if !strings.Contains(a.View(), "cannot change your own role") {
		t.Error("expected self-guard notice in view")
	}
}

func TestRoleChangeOtherOpensForm(t *testing.T) {
	a := New(&admin)
	a.SetPage(userPage(api.User{ID: 1, Username: "jdoe", Role: api.RoleUser}))

	a.Update(keyRune("r"))
	if a.form == nil {
		t.Fatal("expected role form for another user's row")
	}
}

func TestViewMarksOwnRow(t *testing.T) {
	a := New(&admin)
	a.SetPage(userPage(admin, api.User{ID: 1, Username: "jdoe", FirstName: "Jane", LastName: "Doe", Role: api.RoleUser}))

	view := a.View()
	if !strings.Contains(view, "(you)") {
		t.Error("expected the admin's own row to be marked")
	}
}

func TestPageNavigation(t *testing.T) {
	a := New(&admin)
	p := userPage(api.User{ID: 1})
	p.Last = false
	p.TotalPages = 2
	a.SetPage(p)

	_, cmd := a.Update(keyRune("n"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(PageRequestMsg)
	if !ok {
		t.Fatalf("expected PageRequestMsg, got %T", cmd())
	}
	if msg.Page != 1 {
		t.Errorf("expected request for page 1, got %d", msg.Page)
	}
}
