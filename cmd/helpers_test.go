// ABOUTME: Shared test helpers for command tests
// ABOUTME: Spins up a fake backend and seeds a signed-in session

package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/credentials"
)

var testUser = api.User{
	ID:        1,
	Username:  "jdoe",
	Email:     "jdoe@example.com",
	FirstName: "Jane",
	LastName:  "Doe",
	Role:      api.RoleUser,
}

var testAdmin = api.User{
	ID:        2,
	Username:  "root",
	Email:     "root@example.com",
	FirstName: "Ada",
	LastName:  "Root",
	Role:      api.RoleAdmin,
}

var testAgent = api.User{
	ID:        3,
	Username:  "agent",
	Email:     "agent@example.com",
	FirstName: "Alan",
	LastName:  "Agent",
	Role:      api.RoleSupportAgent,
}

// signIn points the CLI at a temp config dir holding a valid token, so
// commands resolve the session against the fake backend's /auth/me.
func signIn(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HELPDESK_CONFIG_DIR", dir)
	if err := credentials.New(dir).Set("test-token", time.Hour); err != nil {
		t.Fatalf("seeding token: %v", err)
	}
}

// backend starts a fake API that answers /auth/me with user and delegates
// everything else to handler.
func backend(t *testing.T, user api.User, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	})
	if handler != nil {
		mux.HandleFunc("/", handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	apiURL = server.URL
	t.Cleanup(func() { apiURL = "" })

	return server
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func ticketPage(tickets ...api.Ticket) api.Page[api.Ticket] {
	return api.Page[api.Ticket]{
		Content:       tickets,
		TotalElements: int64(len(tickets)),
		TotalPages:    1,
		Size:          20,
		Number:        0,
		First:         true,
		Last:          true,
	}
}
