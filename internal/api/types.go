// ABOUTME: Data model for the ticketing backend API
// ABOUTME: Users, tickets, comments, attachments, and request/response shapes

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Role is a user's permission level, assigned by the backend.
type Role string

const (
	RoleUser         Role = "USER"
	RoleSupportAgent Role = "SUPPORT_AGENT"
	RoleAdmin        Role = "ADMIN"
)

// ParseRole converts user input to a Role, accepting any case.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleSupportAgent:
		return RoleSupportAgent, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q (valid: USER, SUPPORT_AGENT, ADMIN)", s)
}

// TicketStatus is a ticket's lifecycle state.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "OPEN"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusResolved   TicketStatus = "RESOLVED"
	StatusClosed     TicketStatus = "CLOSED"
)

// ParseTicketStatus converts user input to a TicketStatus, accepting any case.
func ParseTicketStatus(s string) (TicketStatus, error) {
	switch TicketStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusOpen:
		return StatusOpen, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusResolved:
		return StatusResolved, nil
	case StatusClosed:
		return StatusClosed, nil
	}
	return "", fmt.Errorf("unknown status %q (valid: OPEN, IN_PROGRESS, RESOLVED, CLOSED)", s)
}

// Priority is a ticket's urgency level.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// ParsePriority converts user input to a Priority, accepting any case.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityUrgent:
		return PriorityUrgent, nil
	}
	return "", fmt.Errorf("unknown priority %q (valid: LOW, MEDIUM, HIGH, URGENT)", s)
}

// User is the backend's user record. The client holds a read-only copy.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FullName returns "First Last" for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Ticket is a support request record, owned by the backend.
type Ticket struct {
	ID          int64        `json:"id"`
	Subject     string       `json:"subject"`
	Description string       `json:"description"`
	Status      TicketStatus `json:"status"`
	Priority    Priority     `json:"priority"`
	CreatedBy   User         `json:"createdBy"`
	AssignedTo  *User        `json:"assignedTo,omitempty"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
	Comments    []Comment    `json:"comments,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Comment is a message on a ticket.
type Comment struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedBy User   `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
	TicketID  int64  `json:"ticketId"`
}

// Attachment is file metadata for a ticket; the bytes live on the backend.
type Attachment struct {
	ID          int64  `json:"id"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	ContentType string `json:"contentType"`
	UploadedBy  User   `json:"uploadedBy"`
	UploadedAt  string `json:"uploadedAt"`
	TicketID    int64  `json:"ticketId"`
}

// Page is the backend's paginated list wrapper. Page numbers are zero-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// AuthResponse is returned by the signin and signup endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
	User  User   `json:"user"`
}

// LoginRequest is the signin payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TicketRequest is the create-ticket payload.
type TicketRequest struct {
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// CreateUserRequest is the admin create-user payload.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

// UpdateUserRequest is the admin update-user payload. Empty fields are omitted.
type UpdateUserRequest struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      Role   `json:"role,omitempty"`
}

// TicketFilters narrows ticket list endpoints. Zero values are left off the
// query string. Page numbers are zero-based, matching the backend.
type TicketFilters struct {
	Status    TicketStatus
	Priority  Priority
	Search    string
	Page      int
	Size      int
	Sort      string
	Direction string
}

// Values encodes the filters as query parameters.
func (f *TicketFilters) Values() url.Values {
	v := url.Values{}
	if f == nil {
		return v
	}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		v.Set("priority", string(f.Priority))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size > 0 {
		v.Set("size", strconv.Itoa(f.Size))
	}
	if f.Sort != "" {
		v.Set("sort", f.Sort)
	}
	if f.Direction != "" {
		v.Set("direction", f.Direction)
	}
	return v
}
