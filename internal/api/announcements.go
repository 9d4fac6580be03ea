package api

import (
	"context"
	"net/http"
)

func (c *Client) Announcements(ctx context.Context) ([]Announcement, error) {
	var out struct {
		Announcements []Announcement `json:"announcements"`
	}
	err := c.Do(ctx, http.MethodGet, "/announcements/", nil, &out)
	return out.Announcements, err
}

func (c *Client) Announcement(ctx context.Context, id ID) (Announcement, error) {
	var out struct {
		Announcement Announcement `json:"announcement"`
	}
	err := c.Do(ctx, http.MethodGet, "/announcements/"+seg(id), nil, &out)
	return out.Announcement, err
}

func (c *Client) CreateAnnouncement(ctx context.Context, p Payload) (Announcement, error) {
	var out struct {
		Announcement Announcement `json:"announcement"`
	}
	err := c.Do(ctx, http.MethodPost, "/announcements/", p, &out)
	return out.Announcement, err
}

func (c *Client) UpdateAnnouncement(ctx context.Context, id ID, p Payload) (Announcement, error) {
	var out struct {
		Announcement Announcement `json:"announcement"`
	}
	err := c.Do(ctx, http.MethodPut, "/announcements/"+seg(id), p, &out)
	return out.Announcement, err
}

func (c *Client) DeleteAnnouncement(ctx context.Context, id ID) error {
	return c.Do(ctx, http.MethodDelete, "/announcements/"+seg(id), nil, nil)
}
