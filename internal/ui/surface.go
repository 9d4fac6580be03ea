// Package ui holds the render tree the portal writes into. Views are plain
// data; templates and the CLI renderer turn them into output.
package ui

import (
	"sync"

	"campusintelli/internal/auth"
)

// View is any view model.
type View = any

// Prunable views can drop one item by id without a reload.
type Prunable interface {
	Without(id string) View
}

// Screen is the top-level screen.
type Screen string

const (
	ScreenAuth Screen = "auth"
	ScreenMain Screen = "main"
)

// Kind classifies a toast.
type Kind string

const (
	Success Kind = "success"
	Failure Kind = "error"
	Info    Kind = "info"
)

// Toast is a transient notification.
type Toast struct {
	Message string
	Kind    Kind
}

// Chrome is the header and navigation state of the main screen.
type Chrome struct {
	UserName   string
	Role       auth.Role
	Visibility map[auth.Class]bool
}

// Visible reports whether elements of the named class are shown.
// Unclassed elements (empty name) are always visible.
func (c Chrome) Visible(class string) bool {
	if class == "" {
		return true
	}
	if v, ok := c.Visibility[auth.Class(class)]; ok {
		return v
	}
	return auth.Class(class).VisibleTo(c.Role)
}

// Modal is an open dialog.
type Modal struct {
	ID   string
	View View
}

// Surface is a write-only sink keyed by container id. Writes overwrite.
type Surface struct {
	mu         sync.Mutex
	screen     Screen
	page       Page
	chrome     Chrome
	containers map[string]View
	modals     []Modal
	toasts     []Toast
}

func NewSurface() *Surface {
	return &Surface{screen: ScreenAuth, containers: make(map[string]View)}
}

func (s *Surface) Write(container string, v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.containers[container] = v
}

// View returns what was last written to container.
func (s *Surface) View(container string) (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.containers[container]
	return v, ok
}

// Remove drops item id from the view in container. It reports whether the
// view supported it.
func (s *Surface) Remove(container, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.containers[container].(Prunable)
	if !ok {
		return false
	}
	s.containers[container] = p.Without(id)
	return true
}

// Open shows a modal, replacing one with the same id.
func (s *Surface) Open(id string, v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.modals {
		if m.ID == id {
			s.modals[i].View = v
			return
		}
	}
	s.modals = append(s.modals, Modal{ID: id, View: v})
}

// RemoveFromModal drops item id from an open modal's view.
func (s *Surface) RemoveFromModal(modalID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.modals {
		if m.ID != modalID {
			continue
		}
		p, ok := m.View.(Prunable)
		if !ok {
			return false
		}
		s.modals[i].View = p.Without(id)
		return true
	}
	return false
}

func (s *Surface) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modals = nil
}

// ActiveModals returns open modals in the order they were opened.
func (s *Surface) ActiveModals() []Modal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Modal(nil), s.modals...)
}

func (s *Surface) Notify(msg string, k Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, Toast{Message: msg, Kind: k})
}

// Toasts returns pending notifications without consuming them.
func (s *Surface) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Toast(nil), s.toasts...)
}

// DrainToasts returns and clears pending notifications.
func (s *Surface) DrainToasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.toasts
	s.toasts = nil
	return t
}

func (s *Surface) SetScreen(sc Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = sc
}

func (s *Surface) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

func (s *Surface) SetPage(p Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = p
}

func (s *Surface) Page() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *Surface) SetChrome(c Chrome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chrome = c
}

func (s *Surface) Chrome() Chrome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chrome
}
