package portal

import "campusintelli/internal/ui"

// Pages without backend support show fixed sample content.
var placeholders = map[ui.Page]ui.Placeholder{
	ui.PageLibrary: {
		Title: "Library",
		Intro: "Search the catalogue and track your loans.",
		Items: []ui.PlaceholderItem{
			{Title: "Introduction to Algorithms", Detail: "Cormen et al. | Available"},
			{Title: "Operating System Concepts", Detail: "Silberschatz et al. | Due back Nov 2"},
			{Title: "Database System Concepts", Detail: "Silberschatz et al. | Reserved"},
		},
	},
	ui.PageClubs: {
		Title: "Clubs",
		Intro: "Find student clubs and upcoming meetups.",
		Items: []ui.PlaceholderItem{
			{Title: "Coding Club", Detail: "Wednesdays 17:00 | Lab 2"},
			{Title: "Robotics Society", Detail: "Fridays 16:00 | Workshop"},
			{Title: "Debate Union", Detail: "Tuesdays 18:00 | Hall B"},
		},
	},
	ui.PageTransport: {
		Title: "Transport",
		Intro: "Campus shuttle routes and timings.",
		Items: []ui.PlaceholderItem{
			{Title: "Route 1: Main Gate to Hostels", Detail: "Every 15 minutes, 07:30 - 21:00"},
			{Title: "Route 2: City Centre", Detail: "Hourly, 08:00 - 20:00"},
			{Title: "Route 3: Railway Station", Detail: "08:15, 12:15, 17:45"},
		},
	},
}

// LoadPlaceholder renders the static content of p.
func (a *App) LoadPlaceholder(p ui.Page) {
	ph, ok := placeholders[p]
	if !ok {
		ph = ui.Placeholder{Title: p.Title(), Intro: "Coming soon."}
	}
	a.surface.Write(ui.PlaceholderContainer, ph)
}
