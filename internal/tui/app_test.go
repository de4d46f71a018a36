// ABOUTME: Integration tests for TUI app
// ABOUTME: Tests component wiring, screen routing, and session transitions

package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/1234-ad/ticketing-system/internal/access"
	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/credentials"
	"github.com/1234-ad/ticketing-system/internal/session"
	"github.com/1234-ad/ticketing-system/internal/tui/authform"
	"github.com/1234-ad/ticketing-system/internal/tui/menu"
	"github.com/1234-ad/ticketing-system/internal/tui/ticketlist"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	creds := credentials.New(t.TempDir())
	client := api.New("http://localhost:8080", creds)
	sess := session.New(client, creds)
	client.OnUnauthorized(sess.Invalidate)
	return New(client, sess)
}

// signInUser resolves the app's session against a fake backend that
// answers /auth/me with user.
func signInUser(t *testing.T, a *App, user api.User) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}))
	t.Cleanup(server.Close)

	creds := credentials.New(t.TempDir())
	if err := creds.Set("token", time.Hour); err != nil {
		t.Fatalf("seeding token: %v", err)
	}
	client := api.New(server.URL, creds)
	sess := session.New(client, creds)
	client.OnUnauthorized(sess.Invalidate)
	if state := sess.Restore(context.Background()); state != session.Authenticated {
		t.Fatalf("expected authenticated session, got %v", state)
	}
	a.client = client
	a.session = sess
}

func TestAppInitialState(t *testing.T) {
	app := newTestApp(t)

	if app.screen != ScreenAuth {
		t.Errorf("expected initial screen to be ScreenAuth, got %d", app.screen)
	}
	if app.auth == nil {
		t.Error("expected auth form to be initialized")
	}
}

func TestAppRestoredAnonymousStaysOnAuth(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	updated, _ := app.Update(sessionRestoredMsg{state: session.Anonymous})

	result := updated.(*App)
	if result.screen != ScreenAuth {
		t.Errorf("expected ScreenAuth for anonymous session, got %d", result.screen)
	}
}

func TestAppRestoredAuthenticatedShowsMenu(t *testing.T) {
	app := newTestApp(t)
	signInUser(t, app, api.User{ID: 1, Username: "jdoe", FirstName: "Jane", LastName: "Doe", Role: api.RoleUser})
	app.width = 100
	app.height = 40

	updated, _ := app.Update(sessionRestoredMsg{state: session.Authenticated})

	result := updated.(*App)
	if result.screen != ScreenMenu {
		t.Errorf("expected ScreenMenu after restore, got %d", result.screen)
	}
	if result.menu == nil {
		t.Error("expected menu to be created")
	}
}

func TestAppTicketsLoadedFillsList(t *testing.T) {
	app := newTestApp(t)
	signInUser(t, app, api.User{ID: 1, Role: api.RoleUser})
	app.screen = ScreenTicketList
	app.list = ticketlist.New("My Tickets")
	app.width = 100
	app.height = 40

	page := &api.Page[api.Ticket]{
		Content:       []api.Ticket{{ID: 1, Subject: "Broken mouse", Status: api.StatusOpen, Priority: api.PriorityLow}},
		TotalElements: 1,
		TotalPages:    1,
		First:         true,
		Last:          true,
	}
	updated, _ := app.Update(ticketsLoadedMsg{page: page})

	result := updated.(*App)
	view := result.View()
	if !strings.Contains(view, "Broken mouse") {
		t.Error("expected loaded ticket in list view")
	}
}

func TestAppUnauthorizedDropsToAuth(t *testing.T) {
	app := newTestApp(t)
	signInUser(t, app, api.User{ID: 1, Role: api.RoleUser})
	app.screen = ScreenTicketList
	app.list = ticketlist.New("My Tickets")

	err := &api.APIError{StatusCode: 401, Message: "token expired"}
	updated, _ := app.Update(ticketsLoadedMsg{err: err})

	result := updated.(*App)
	if result.screen != ScreenAuth {
		t.Errorf("expected ScreenAuth after 401, got %d", result.screen)
	}
	if !strings.Contains(result.View(), "Session expired") {
		t.Error("expected session-expired notice on auth screen")
	}
}

func TestAppMenuSelectionOpensForm(t *testing.T) {
	app := newTestApp(t)
	signInUser(t, app, api.User{ID: 1, Role: api.RoleUser})
	app.width = 100
	app.height = 40

	updated, _ := app.Update(menu.SelectedMsg{Entry: access.EntryCreateTicket})

	result := updated.(*App)
	if result.screen != ScreenTicketForm {
		t.Errorf("expected ScreenTicketForm, got %d", result.screen)
	}
	if result.form == nil {
		t.Error("expected ticket form to be created")
	}
}

func TestAppMenuSelectionHonorsRoleGate(t *testing.T) {
	app := newTestApp(t)
	signInUser(t, app, api.User{ID: 1, Role: api.RoleUser})
	app.screen = ScreenMenu

	// A plain user asking for the admin panel must not get it
	updated, _ := app.Update(menu.SelectedMsg{Entry: access.EntryAdminPanel})

	result := updated.(*App)
	if result.screen == ScreenAdmin {
		t.Error("admin panel must not open for a USER role")
	}
}

func TestAppAuthCancelQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(authform.CancelledMsg{})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
}

func TestAppViewShowsHeaderAndFooter(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	view := app.View()
	if !strings.Contains(view, "Helpdesk") {
		t.Error("expected header branding")
	}
	if !strings.Contains(view, "╭─") || !strings.Contains(view, "╰─") {
		t.Error("expected frame borders")
	}
}

func TestFormatTimeSince(t *testing.T) {
	if got := formatTimeSince(time.Now()); got != "just now" {
		t.Errorf("expected 'just now', got %q", got)
	}
	if got := formatTimeSince(time.Now().Add(-2 * time.Minute)); got != "2m ago" {
		t.Errorf("expected '2m ago', got %q", got)
	}
	if got := formatTimeSince(time.Now().Add(-3 * time.Hour)); got != "3h ago" {
		t.Errorf("expected '3h ago', got %q", got)
	}
}
