// ABOUTME: Ticket endpoints of the ticketing backend
// ABOUTME: Create, list, search, triage, comments, and attachments

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// CreateTicket calls POST /tickets.
func (c *Client) CreateTicket(ctx context.Context, req TicketRequest) (*Ticket, error) {
	var ticket Ticket
	if err := c.doJSON(ctx, http.MethodPost, "/tickets", nil, req, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// MyTickets calls GET /tickets/my, tickets created by the current user.
func (c *Client) MyTickets(ctx context.Context, filters *TicketFilters) (*Page[Ticket], error) {
	var page Page[Ticket]
	if err := c.doJSON(ctx, http.MethodGet, "/tickets/my", filters.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AllTickets calls GET /tickets. The backend restricts this to agents and
// admins; the client does not pre-check.
func (c *Client) AllTickets(ctx context.Context, filters *TicketFilters) (*Page[Ticket], error) {
	var page Page[Ticket]
	if err := c.doJSON(ctx, http.MethodGet, "/tickets", filters.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchTickets calls GET /tickets/search. Search stays a separate endpoint
// from the filtered list, matching the backend's two call shapes.
func (c *Client) SearchTickets(ctx context.Context, query string, filters *TicketFilters) (*Page[Ticket], error) {
	v := filters.Values()
	v.Set("q", query)
	var page Page[Ticket]
	if err := c.doJSON(ctx, http.MethodGet, "/tickets/search", v, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Ticket calls GET /tickets/{id}.
func (c *Client) Ticket(ctx context.Context, id int64) (*Ticket, error) {
	var ticket Ticket
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/tickets/%d", id), nil, nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateTicketStatus calls PATCH /tickets/{id}/status.
func (c *Client) UpdateTicketStatus(ctx context.Context, id int64, status TicketStatus) (*Ticket, error) {
	var ticket Ticket
	body := map[string]TicketStatus{"status": status}
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/tickets/%d/status", id), nil, body, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// AssignTicket calls PATCH /tickets/{id}/assign.
func (c *Client) AssignTicket(ctx context.Context, id, assigneeID int64) (*Ticket, error) {
	var ticket Ticket
	body := map[string]int64{"assigneeId": assigneeID}
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/tickets/%d/assign", id), nil, body, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// AddComment calls POST /tickets/{id}/comments.
func (c *Client) AddComment(ctx context.Context, ticketID int64, content string) (*Comment, error) {
	var comment Comment
	body := map[string]string{"content": content}
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/tickets/%d/comments", ticketID), nil, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// TicketComments calls GET /tickets/{id}/comments.
func (c *Client) TicketComments(ctx context.Context, ticketID int64) ([]Comment, error) {
	var comments []Comment
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/tickets/%d/comments", ticketID), nil, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// UploadAttachment calls POST /tickets/{id}/attachments with a multipart form.
func (c *Client) UploadAttachment(ctx context.Context, ticketID int64, fileName string, content io.Reader) (*Attachment, error) {
	var attachment Attachment
	path := fmt.Sprintf("/tickets/%d/attachments", ticketID)
	if err := c.uploadFile(ctx, path, fileName, content, &attachment); err != nil {
		return nil, err
	}
	return &attachment, nil
}

// DownloadAttachment streams GET /tickets/{id}/attachments/{attachmentId}/download
// into w and returns the byte count.
func (c *Client) DownloadAttachment(ctx context.Context, ticketID, attachmentID int64, w io.Writer) (int64, error) {
	path := fmt.Sprintf("/tickets/%d/attachments/%d/download", ticketID, attachmentID)
	return c.downloadFile(ctx, path, w)
}
