package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Rooms(ctx context.Context) ([]Room, error) {
	var out struct {
		Rooms []Room `json:"rooms"`
	}
	err := c.Do(ctx, http.MethodGet, "/bookings/rooms", nil, &out)
	return out.Rooms, err
}

// AvailableRooms lists rooms free on date between start and end (HH:MM).
func (c *Client) AvailableRooms(ctx context.Context, date, start, end string) ([]Room, error) {
	var out struct {
		Rooms []Room `json:"rooms"`
	}
	q := url.Values{"date": {date}, "start_time": {start}, "end_time": {end}}
	err := c.Do(ctx, http.MethodGet, "/bookings/rooms/available?"+q.Encode(), nil, &out)
	return out.Rooms, err
}

// MyBookings lists the caller's bookings.
func (c *Client) MyBookings(ctx context.Context) ([]Booking, error) {
	var out struct {
		Bookings []Booking `json:"bookings"`
	}
	err := c.Do(ctx, http.MethodGet, "/bookings/", nil, &out)
	return out.Bookings, err
}

func (c *Client) CreateBooking(ctx context.Context, b BookingRequest) (Booking, error) {
	var out struct {
		Booking Booking `json:"booking"`
	}
	err := c.Do(ctx, http.MethodPost, "/bookings/", b, &out)
	return out.Booking, err
}

func (c *Client) CancelBooking(ctx context.Context, id ID) error {
	return c.Do(ctx, http.MethodDelete, "/bookings/"+seg(id), nil, nil)
}
