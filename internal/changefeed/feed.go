// Package changefeed carries "resource changed" notifications from the CRUD
// manager to whichever views want to refresh.
package changefeed

import (
	"context"
	"sync"
)

// Resource names a backend collection.
type Resource string

const (
	Events        Resource = "events"
	Announcements Resource = "announcements"
	Timetable     Resource = "timetable"
	Bookings      Resource = "bookings"
	Attendance    Resource = "attendance"
	Profile       Resource = "profile"
)

// Action is what happened to the resource.
type Action string

const (
	Created Action = "created"
	Updated Action = "updated"
	Deleted Action = "deleted"
)

// Change is one notification.
type Change struct {
	Resource Resource
	Action   Action
	ID       string
}

// Handler reacts to a change.
type Handler func(ctx context.Context, c Change)

type subscription struct {
	id int
	h  Handler
}

// Feed dispatches changes synchronously, in subscription order, on the
// publisher's goroutine.
type Feed struct {
	mu     sync.Mutex
	nextID int
	subs   map[Resource][]subscription
}

// New creates an empty feed.
func New() *Feed {
	return &Feed{subs: make(map[Resource][]subscription)}
}

// Subscribe registers h for changes to r and returns a function that removes it.
func (f *Feed) Subscribe(r Resource, h Handler) (unsubscribe func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	f.subs[r] = append(f.subs[r], subscription{id: id, h: h})
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		subs := f.subs[r]
		for i, s := range subs {
			if s.id == id {
				f.subs[r] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers c to every subscriber of c.Resource.
func (f *Feed) Publish(ctx context.Context, c Change) {
	f.mu.Lock()
	subs := append([]subscription(nil), f.subs[c.Resource]...)
	f.mu.Unlock()
	for _, s := range subs {
		s.h(ctx, c)
	}
}
