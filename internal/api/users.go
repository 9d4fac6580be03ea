package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out struct {
		Users []User `json:"users"`
	}
	err := c.Do(ctx, http.MethodGet, "/users/", nil, &out)
	return out.Users, err
}

func (c *Client) User(ctx context.Context, id ID) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.Do(ctx, http.MethodGet, "/users/"+seg(id), nil, &out)
	return out.User, err
}

// UpdateUser patches profile fields of a user.
func (c *Client) UpdateUser(ctx context.Context, id ID, p Payload) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.Do(ctx, http.MethodPut, "/users/"+seg(id), p, &out)
	return out.User, err
}

// Directory searches the campus directory by name.
func (c *Client) Directory(ctx context.Context, query string) ([]User, error) {
	var out struct {
		Directory []User `json:"directory"`
	}
	err := c.Do(ctx, http.MethodGet, "/users/directory?q="+url.QueryEscape(query), nil, &out)
	return out.Directory, err
}
