package admin

import (
	"context"
	"net/url"

	"campusintelli/internal/api"
	"campusintelli/internal/auth"
	"campusintelli/internal/changefeed"
	"campusintelli/internal/ui"
)

// LoadAnnouncements renders the announcement list as returned by the
// backend; pinned items are marked, not reordered.
func (m *Manager) LoadAnnouncements(ctx context.Context) error {
	perms := m.Permissions()
	anns, err := m.api.Announcements(ctx)
	if err != nil {
		m.surface.Write(ui.AnnouncementsList, ui.ErrorState{Message: "Failed to load announcements: " + err.Error()})
		return err
	}

	list := ui.AnnouncementList{CanAdd: perms.CanManage}
	for _, a := range anns {
		list.Announcements = append(list.Announcements, announcementCard(a, perms))
	}
	m.surface.Write(ui.AnnouncementsList, list)
	return nil
}

func announcementCard(a api.Announcement, perms auth.Permissions) ui.AnnouncementCard {
	priority := a.Priority
	if priority == "" {
		priority = "normal"
	}
	author := a.CreatedByName
	if author == "" {
		author = a.AuthorName
	}
	if author == "" {
		author = "Admin"
	}
	date := a.CreatedAt
	if date == "" {
		date = a.PublishedAt
	}
	return ui.AnnouncementCard{
		ID:        string(a.ID),
		Title:     a.Title,
		Content:   ui.Markdown(a.Content),
		Excerpt:   ui.Excerpt(a.Content, 100),
		Priority:  priority,
		Date:      ui.Date(date),
		Author:    author,
		Audience:  a.TargetAudience,
		Pinned:    a.IsPinned,
		CanEdit:   perms.CanManage,
		CanDelete: perms.IsAdmin,
	}
}

// ShowAnnouncementForm opens the announcement modal, prefilled when a is set.
func (m *Manager) ShowAnnouncementForm(a *api.Announcement) {
	var f ui.AnnouncementForm
	if a != nil {
		f = ui.AnnouncementForm{
			ID:             string(a.ID),
			Title:          a.Title,
			Content:        a.Content,
			Priority:       a.Priority,
			TargetAudience: a.TargetAudience,
			IsPinned:       a.IsPinned,
		}
	}
	f.Priorities = ui.Priorities(f.Priority)
	f.Audiences = ui.Audiences(f.TargetAudience)
	m.surface.Open(ui.AnnouncementModal, f)
}

func announcementFormFrom(v url.Values) ui.AnnouncementForm {
	_, pinned := v["is_pinned"]
	return ui.AnnouncementForm{
		ID:             v.Get("id"),
		Title:          v.Get("title"),
		Content:        v.Get("content"),
		Priority:       v.Get("priority"),
		Priorities:     ui.Priorities(v.Get("priority")),
		TargetAudience: v.Get("target_audience"),
		Audiences:      ui.Audiences(v.Get("target_audience")),
		IsPinned:       pinned,
	}
}

// SubmitAnnouncement creates or updates an announcement from form values.
func (m *Manager) SubmitAnnouncement(ctx context.Context, values url.Values) error {
	return m.saveAnnouncement(ctx, values, FormPayload(values, announcementFields))
}

// PatchAnnouncement updates only the fields present in values.
func (m *Manager) PatchAnnouncement(ctx context.Context, id string, values url.Values) error {
	values.Set("id", id)
	return m.saveAnnouncement(ctx, values, PatchPayload(values, announcementFields))
}

func (m *Manager) saveAnnouncement(ctx context.Context, values url.Values, p api.Payload) error {
	id := values.Get("id")

	var (
		saved api.Announcement
		err   error
	)
	if id != "" {
		saved, err = m.api.UpdateAnnouncement(ctx, api.ID(id), p)
	} else {
		saved, err = m.api.CreateAnnouncement(ctx, p)
	}
	if err != nil {
		m.surface.Open(ui.AnnouncementModal, announcementFormFrom(values))
		m.fail(err)
		return err
	}

	action := changefeed.Created
	if id != "" {
		action = changefeed.Updated
		m.ok("Announcement updated successfully")
	} else {
		m.ok("Announcement created successfully")
	}
	m.surface.CloseAll()
	if saved.ID != "" {
		id = string(saved.ID)
	}
	m.publish(ctx, changefeed.Announcements, action, id)
	return nil
}

// EditAnnouncement loads an announcement and opens it in the form.
func (m *Manager) EditAnnouncement(ctx context.Context, id string) error {
	a, err := m.api.Announcement(ctx, api.ID(id))
	if err != nil {
		m.surface.Notify("Failed to load announcement", ui.Failure)
		return err
	}
	m.ShowAnnouncementForm(&a)
	return nil
}

// DeleteAnnouncement removes an announcement once confirmed.
func (m *Manager) DeleteAnnouncement(ctx context.Context, id string, c Confirmer) error {
	if !c.Confirm(ctx, "Are you sure you want to delete this announcement?") {
		return nil
	}
	if err := m.api.DeleteAnnouncement(ctx, api.ID(id)); err != nil {
		m.fail(err)
		return err
	}
	m.ok("Announcement deleted successfully")
	m.surface.Remove(ui.AnnouncementsList, id)
	m.publish(ctx, changefeed.Announcements, changefeed.Deleted, id)
	return nil
}
