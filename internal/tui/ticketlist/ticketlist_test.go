// ABOUTME: Tests for the paginated ticket table
// ABOUTME: Verifies row building, selection, and page navigation messages

package ticketlist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1234-ad/ticketing-system/internal/api"
)

func page(number int, first, last bool, tickets ...api.Ticket) *api.Page[api.Ticket] {
	return &api.Page[api.Ticket]{
		Content:       tickets,
		TotalElements: int64(len(tickets)),
		TotalPages:    3,
		Number:        number,
		First:         first,
		Last:          last,
	}
}

func sample() api.Ticket {
	return api.Ticket{
		ID:       7,
		Subject:  "VPN keeps dropping",
		Status:   api.StatusInProgress,
		Priority: api.PriorityHigh,
		AssignedTo: &api.User{
			ID: 3, FirstName: "Alan", LastName: "Agent",
		},
	}
}

func TestSetPageBuildsRows(t *testing.T) {
	l := New("My Tickets")
	l.SetPage(page(0, true, false, sample()))

	view := l.View()
	for _, want := range []string{"VPN keeps dropping", "IN_PROGRESS", "HIGH", "Alan Agent", "Page 1 of 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestSelectedTicket(t *testing.T) {
	l := New("My Tickets")
	l.SetPage(page(0, true, true, sample()))

	if sel := l.Selected(); sel == nil || sel.ID != 7 {
		t.Errorf("expected ticket 7 selected, got %+v", sel)
	}
}

func TestSelectedEmptyPage(t *testing.T) {
	l := New("My Tickets")
	l.SetPage(page(0, true, true))

	if sel := l.Selected(); sel != nil {
		t.Errorf("expected nil selection on empty page, got %+v", sel)
	}
}

func TestEnterEmitsSelection(t *testing.T) {
	l := New("My Tickets")
	l.SetPage(page(0, true, true, sample()))

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", cmd())
	}
	if msg.ID != 7 {
		t.Errorf("expected ticket 7, got %d", msg.ID)
	}
}

func TestNextPageRequest(t *testing.T) {
	l := New("My Tickets")
	l.SetPage(page(0, true, false, sample()))

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
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

func TestNoPageBeyondLast(t *testing.T) {
	l := New("My Tickets")
	l.SetPage(page(2, false, true, sample()))

	if _, cmd := l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}); cmd != nil {
		t.Error("must not request a page past the last one")
	}
}

func TestNoPageBeforeFirst(t *testing.T) {
	l := New("My Tickets")
	l.SetPage(page(0, true, false, sample()))

	if _, cmd := l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}); cmd != nil {
		t.Error("must not request a page before the first one")
	}
}

func TestFilterNarrowsRows(t *testing.T) {
	l := New("My Tickets")
	other := api.Ticket{ID: 9, Subject: "Monitor flickers", Status: api.StatusOpen, Priority: api.PriorityLow}
	l.SetPage(page(0, true, true, sample(), other))

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	for _, r := range "vpn" {
		l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	if len(l.visible) != 1 {
		t.Fatalf("expected 1 visible ticket, got %d", len(l.visible))
	}
	if sel := l.Selected(); sel == nil || sel.ID != 7 {
		t.Errorf("expected the VPN ticket selected, got %+v", sel)
	}

	// Esc clears the filter and restores the full page
	l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(l.visible) != 2 {
		t.Errorf("expected filter cleared on esc, got %d visible", len(l.visible))
	}
}

func TestBackMessage(t *testing.T) {
	l := New("My Tickets")
	l.SetPage(page(0, true, true))

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Errorf("expected BackMsg, got %T", cmd())
	}
}
