package api

import (
	"context"
	"net/http"
	"net/url"
)

func seg(id ID) string { return url.PathEscape(string(id)) }

// withQuery appends the non-empty values of q to endpoint.
func withQuery(endpoint string, q url.Values) string {
	for k, v := range q {
		if len(v) == 0 || v[0] == "" {
			delete(q, k)
		}
	}
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}

// Login exchanges credentials for the session user, token included.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.Do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out.User, err
}

// Register creates an account. The caller logs in separately.
func (c *Client) Register(ctx context.Context, r Registration) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.Do(ctx, http.MethodPost, "/auth/register", r, &out)
	return out.User, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me returns the user the bearer token belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.Do(ctx, http.MethodGet, "/auth/me", nil, &out)
	return out.User, err
}
