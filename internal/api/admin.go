// ABOUTME: Admin user-management endpoints of the ticketing backend
// ABOUTME: List, search, create, update, role change, and delete

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

func pageQuery(page, size int) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(size))
	return v
}

// Users calls GET /admin/users.
func (c *Client) Users(ctx context.Context, page, size int) (*Page[User], error) {
	var p Page[User]
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", pageQuery(page, size), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchUsers calls GET /admin/users/search.
func (c *Client) SearchUsers(ctx context.Context, query string, page, size int) (*Page[User], error) {
	v := pageQuery(page, size)
	v.Set("q", query)
	var p Page[User]
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users/search", v, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateUser calls POST /admin/users.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/admin/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser calls PUT /admin/users/{id}.
func (c *Client) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d", id), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRole calls PATCH /admin/users/{id}/role.
func (c *Client) UpdateUserRole(ctx context.Context, id int64, role Role) (*User, error) {
	var user User
	body := map[string]Role{"role": role}
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d/role", id), nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser calls DELETE /admin/users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil, nil)
}
