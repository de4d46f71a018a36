// ABOUTME: Tests for the backend API client
// ABOUTME: Uses httptest to verify bearer attachment and the 401 policy

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/1234-ad/ticketing-system/internal/credentials"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *credentials.Store, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	creds := credentials.New(t.TempDir())
	return New(server.URL, creds), creds, server
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	c, creds, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(User{ID: 1})
	}))
	creds.Set("tok-1", time.Hour)

	if _, err := c.CurrentUser(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected Authorization 'Bearer tok-1', got %q", gotAuth)
	}
}

func TestBearerHeaderOmittedWithoutToken(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode(AuthResponse{Token: "t"})
	}))

	if _, err := c.SignIn(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasAuth {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestUnauthorizedClearsStoreAndFiresHookOnce(t *testing.T) {
	c, creds, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	creds.Set("stale", time.Hour)

	hookCalls := 0
	c.OnUnauthorized(func() { hookCalls++ })

	_, err := c.CurrentUser(context.Background())
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !IsUnauthorized(err) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
	if _, ok := creds.Get(); ok {
		t.Error("expected token to be cleared after 401")
	}
	if hookCalls != 1 {
		t.Errorf("expected hook to fire exactly once, fired %d times", hookCalls)
	}
}

func TestUnauthorizedPolicyAppliesToEveryEndpoint(t *testing.T) {
	c, creds, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	calls := []func() error{
		func() error { _, err := c.MyTickets(context.Background(), nil); return err },
		func() error { _, err := c.Ticket(context.Background(), 7); return err },
		func() error { _, err := c.Users(context.Background(), 0, 10); return err },
		func() error { return c.DeleteUser(context.Background(), 3) },
		func() error {
			_, err := c.UploadAttachment(context.Background(), 7, "a.txt", strings.NewReader("x"))
			return err
		},
		func() error {
			_, err := c.DownloadAttachment(context.Background(), 7, 1, io.Discard)
			return err
		},
	}

	for i, call := range calls {
		creds.Set("tok", time.Hour)
		err := call()
		if !IsUnauthorized(err) {
			t.Errorf("call %d: expected unauthorized error, got %v", i, err)
		}
		if _, ok := creds.Get(); ok {
			t.Errorf("call %d: expected token cleared after 401", i)
		}
	}
}

func TestOtherErrorsDoNotClearStore(t *testing.T) {
	c, creds, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	creds.Set("tok", time.Hour)

	_, err := c.SignIn(context.Background(), "a@b.com", "bad")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "invalid credentials" {
		t.Errorf("expected backend message surfaced, got %q", apiErr.Message)
	}
	if _, ok := creds.Get(); !ok {
		t.Error("non-401 errors must not clear the stored token")
	}
}

func TestConnectionErrorIsNotAPIError(t *testing.T) {
	creds := credentials.New(t.TempDir())
	c := New("http://127.0.0.1:1", creds)

	_, err := c.CurrentUser(context.Background())
	if err == nil {
		t.Fatal("expected connection error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("transport failure should not be an APIError")
	}
}

func TestTicketFiltersEncoded(t *testing.T) {
	var gotQuery string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tickets" {
			t.Errorf("expected path /tickets, got %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(Page[Ticket]{})
	}))

	filters := &TicketFilters{Status: StatusOpen, Priority: PriorityHigh, Page: 2, Size: 25}
	if _, err := c.AllTickets(context.Background(), filters); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"status=OPEN", "priority=HIGH", "page=2", "size=25"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("expected query to contain %s, got %s", want, gotQuery)
		}
	}
}

func TestSearchUsesSeparateEndpoint(t *testing.T) {
	var gotPath, gotQ string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQ = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(Page[Ticket]{})
	}))

	if _, err := c.SearchTickets(context.Background(), "printer", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/tickets/search" {
		t.Errorf("expected /tickets/search, got %s", gotPath)
	}
	if gotQ != "printer" {
		t.Errorf("expected q=printer, got %s", gotQ)
	}
}

func TestStatusUpdateSendsPatch(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Ticket{ID: 9, Status: StatusResolved})
	}))

	ticket, err := c.UpdateTicketStatus(context.Background(), 9, StatusResolved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/tickets/9/status" {
		t.Errorf("expected PATCH /tickets/9/status, got %s %s", gotMethod, gotPath)
	}
	if gotBody["status"] != "RESOLVED" {
		t.Errorf("expected status RESOLVED in body, got %v", gotBody)
	}
	if ticket.Status != StatusResolved {
		t.Errorf("expected resolved ticket back, got %s", ticket.Status)
	}
}

func TestUploadAttachmentMultipart(t *testing.T) {
	var gotContentType string
	var gotFile []byte
	var gotName string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("expected multipart field 'file': %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		gotName = header.Filename
		gotFile, _ = io.ReadAll(f)
		json.NewEncoder(w).Encode(Attachment{ID: 4, FileName: header.Filename})
	}))

	att, err := c.UploadAttachment(context.Background(), 7, "notes.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mediaType, _, _ := mime.ParseMediaType(gotContentType)
	if mediaType != "multipart/form-data" {
		t.Errorf("expected multipart/form-data, got %s", mediaType)
	}
	if gotName != "notes.txt" {
		t.Errorf("expected filename notes.txt, got %s", gotName)
	}
	if string(gotFile) != "hello" {
		t.Errorf("expected uploaded content 'hello', got %q", gotFile)
	}
	if att.ID != 4 {
		t.Errorf("expected attachment id 4, got %d", att.ID)
	}
}

func TestDownloadAttachmentStreamsBytes(t *testing.T) {
	payload := []byte{0x1f, 0x8b, 0x02, 0x00}
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tickets/7/attachments/3/download" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(payload)
	}))

	var buf bytes.Buffer
	n, err := c.DownloadAttachment(context.Background(), 7, 3, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len(payload)) {
		t.Errorf("expected %d bytes, got %d", len(payload), n)
	}
	if !bytes.Equal(buf.Bytes(), payload) {
		t.Error("downloaded bytes do not match")
	}
}

func TestAdminRoleChangeSendsPatch(t *testing.T) {
	var gotMethod, gotPath string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(User{ID: 5, Role: RoleSupportAgent})
	}))

	user, err := c.UpdateUserRole(context.Background(), 5, RoleSupportAgent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/admin/users/5/role" {
		t.Errorf("expected PATCH /admin/users/5/role, got %s %s", gotMethod, gotPath)
	}
	if user.Role != RoleSupportAgent {
		t.Errorf("expected SUPPORT_AGENT, got %s", user.Role)
	}
}
