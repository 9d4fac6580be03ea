package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// UserQuery filters the admin user listing.
type UserQuery struct {
	Page    int
	PerPage int
	Role    string
	Search  string
}

func (c *Client) AdminUsers(ctx context.Context, q UserQuery) (UserPage, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = 20
	}
	var out UserPage
	ep := withQuery("/admin/users", url.Values{
		"page":     {strconv.Itoa(q.Page)},
		"per_page": {strconv.Itoa(q.PerPage)},
		"role":     {q.Role},
		"search":   {q.Search},
	})
	err := c.Do(ctx, http.MethodGet, ep, nil, &out)
	return out, err
}

func (c *Client) AdminUser(ctx context.Context, id ID) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.Do(ctx, http.MethodGet, "/admin/users/"+seg(id), nil, &out)
	return out.User, err
}

func (c *Client) AdminCreateUser(ctx context.Context, r Registration) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.Do(ctx, http.MethodPost, "/admin/users", r, &out)
	return out.User, err
}

func (c *Client) AdminUpdateUser(ctx context.Context, id ID, p Payload) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.Do(ctx, http.MethodPut, "/admin/users/"+seg(id), p, &out)
	return out.User, err
}

// AdminDeleteUser deactivates a user; AdminRestoreUser reverses it.
func (c *Client) AdminDeleteUser(ctx context.Context, id ID) error {
	return c.Do(ctx, http.MethodDelete, "/admin/users/"+seg(id), nil, nil)
}

func (c *Client) AdminRestoreUser(ctx context.Context, id ID) error {
	return c.Do(ctx, http.MethodPost, "/admin/users/"+seg(id)+"/restore", nil, nil)
}

func (c *Client) AdminUpdateUserRole(ctx context.Context, id ID, role string) (Message, error) {
	var out Message
	err := c.Do(ctx, http.MethodPut, "/admin/users/"+seg(id)+"/role", map[string]string{"role": role}, &out)
	return out, err
}

func (c *Client) SystemStats(ctx context.Context) (Stats, error) {
	var out struct {
		Stats Stats `json:"stats"`
	}
	err := c.Do(ctx, http.MethodGet, "/admin/stats", nil, &out)
	return out.Stats, err
}

func (c *Client) BulkCreateUsers(ctx context.Context, users []Registration) (BulkResult, error) {
	var out BulkResult
	err := c.Do(ctx, http.MethodPost, "/admin/users/bulk-create", map[string]any{"users": users}, &out)
	return out, err
}
