package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/urfave/cli/v2"

	"campusintelli/internal/api"
	"campusintelli/internal/session"
	"campusintelli/internal/ui"
)

var (
	errManage = errors.New("your role cannot manage campus content")
	errAdmin  = errors.New("only administrators can delete")
)

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "login",
			Usage: "sign in and show the dashboard",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"CAMPUS_PASSWORD"}},
			},
			Action: run("", func(ctx context.Context, c *cli.Context, e *env) error {
				return e.app.Login(ctx, c.String("email"), c.String("password"))
			}),
		},
		{
			Name:  "register",
			Usage: "create an account",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Required: true},
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"CAMPUS_PASSWORD"}},
				&cli.StringFlag{Name: "role", Value: "student"},
				&cli.StringFlag{Name: "department"},
			},
			Action: run("", func(ctx context.Context, c *cli.Context, e *env) error {
				return e.app.Register(ctx, api.Registration{
					Name:       c.String("name"),
					Email:      c.String("email"),
					Password:   c.String("password"),
					Role:       c.String("role"),
					Department: c.String("department"),
				})
			}),
		},
		{
			Name:  "logout",
			Usage: "forget the stored session",
			Action: run("", func(ctx context.Context, _ *cli.Context, e *env) error {
				return e.app.Logout(ctx)
			}),
		},
		{
			Name:      "show",
			Usage:     "print a page",
			ArgsUsage: "<page>",
			Action: run("", func(ctx context.Context, c *cli.Context, e *env) error {
				name := c.Args().First()
				if name == "" {
					name = string(ui.PageDashboard)
				}
				p, ok := ui.ParsePage(name)
				if !ok {
					return fmt.Errorf("unknown page %q, try one of: %s", name, pageNames())
				}
				return e.app.Navigate(ctx, p)
			}),
		},
		{
			Name:  "profile",
			Usage: "update your name and department",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Required: true},
				&cli.StringFlag{Name: "department"},
			},
			Action: run(ui.PageProfile, signedIn(func(ctx context.Context, c *cli.Context, e *env) error {
				return e.app.UpdateProfile(ctx, c.String("name"), c.String("department"))
			})),
		},
		attendanceCommand(),
		bookingCommand(),
		eventCommand(),
		announcementCommand(),
		timetableCommand(),
	}
}

func pageNames() string {
	names := make([]string, len(ui.Pages))
	for i, p := range ui.Pages {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func signedIn(fn func(context.Context, *cli.Context, *env) error) func(context.Context, *cli.Context, *env) error {
	return func(ctx context.Context, c *cli.Context, e *env) error {
		if e.surface.Screen() != ui.ScreenMain {
			return session.ErrNoSession
		}
		return fn(ctx, c, e)
	}
}

func manage(fn func(context.Context, *cli.Context, *env) error) func(context.Context, *cli.Context, *env) error {
	return signedIn(func(ctx context.Context, c *cli.Context, e *env) error {
		if !e.app.Manager().Permissions().CanManage {
			return errManage
		}
		return fn(ctx, c, e)
	})
}

func adminOnly(fn func(context.Context, *cli.Context, *env) error) func(context.Context, *cli.Context, *env) error {
	return signedIn(func(ctx context.Context, c *cli.Context, e *env) error {
		if !e.app.Manager().Permissions().IsAdmin {
			return errAdmin
		}
		return fn(ctx, c, e)
	})
}

// formValues maps the set flags to form fields, dashes becoming underscores.
// Bool flags are checkboxes: sent as "on" when true, and as "false" only for
// partial updates.
func formValues(c *cli.Context, partial bool) url.Values {
	v := url.Values{}
	for _, f := range c.Command.Flags {
		name := f.Names()[0]
		if !c.IsSet(name) {
			continue
		}
		field := strings.ReplaceAll(name, "-", "_")
		if _, ok := f.(*cli.BoolFlag); ok {
			switch {
			case c.Bool(name):
				v.Set(field, "on")
			case partial:
				v.Set(field, "false")
			}
			continue
		}
		v.Set(field, c.String(name))
	}
	return v
}

func idArg(c *cli.Context) (string, error) {
	id := c.Args().First()
	if id == "" {
		return "", fmt.Errorf("%s: missing id", c.Command.Name)
	}
	return id, nil
}

func attendanceCommand() *cli.Command {
	return &cli.Command{
		Name:  "attendance",
		Usage: "QR attendance",
		Subcommands: []*cli.Command{
			{
				Name:  "qr",
				Usage: "generate a QR code for one of your courses",
				Flags: []cli.Flag{&cli.StringFlag{Name: "course", Required: true}},
				Action: run(ui.PageAttendance, manage(func(ctx context.Context, c *cli.Context, e *env) error {
					return e.app.GenerateQR(ctx, c.String("course"))
				})),
			},
			{
				Name:      "mark",
				Usage:     "mark yourself present with scanned QR data",
				ArgsUsage: "<qr-data>",
				Action: run(ui.PageAttendance, signedIn(func(ctx context.Context, c *cli.Context, e *env) error {
					return e.app.MarkAttendance(ctx, c.Args().First())
				})),
			},
		},
	}
}

func slotFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "date", Required: true, Usage: "YYYY-MM-DD"},
		&cli.StringFlag{Name: "start", Required: true, Usage: "HH:MM"},
		&cli.StringFlag{Name: "end", Required: true, Usage: "HH:MM"},
	}
}

func bookingForm(c *cli.Context) ui.BookingForm {
	return ui.BookingForm{
		Date:      c.String("date"),
		StartTime: c.String("start"),
		EndTime:   c.String("end"),
		Purpose:   c.String("purpose"),
	}
}

func bookingCommand() *cli.Command {
	return &cli.Command{
		Name:  "rooms",
		Usage: "room availability and bookings",
		Subcommands: []*cli.Command{
			{
				Name:  "available",
				Usage: "list rooms free for a slot",
				Flags: slotFlags(),
				Action: run(ui.PageBookings, signedIn(func(ctx context.Context, c *cli.Context, e *env) error {
					return e.app.CheckAvailability(ctx, bookingForm(c))
				})),
			},
			{
				Name:  "book",
				Usage: "book a room",
				Flags: append(slotFlags(),
					&cli.StringFlag{Name: "room", Required: true},
					&cli.StringFlag{Name: "purpose"},
				),
				Action: run(ui.PageBookings, signedIn(func(ctx context.Context, c *cli.Context, e *env) error {
					return e.app.BookRoom(ctx, c.String("room"), bookingForm(c))
				})),
			},
			{
				Name:      "cancel",
				Usage:     "cancel one of your bookings",
				ArgsUsage: "<booking-id>",
				Action: run(ui.PageBookings, signedIn(func(ctx context.Context, c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					return e.app.CancelBooking(ctx, id, e.confirm)
				})),
			},
		},
	}
}

func eventFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title"},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "event-type"},
		&cli.BoolFlag{Name: "is-holiday"},
		&cli.StringFlag{Name: "start-date"},
		&cli.StringFlag{Name: "end-date"},
		&cli.StringFlag{Name: "start-time"},
		&cli.StringFlag{Name: "end-time"},
		&cli.StringFlag{Name: "location"},
	}
}

func eventCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "manage calendar events",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Flags: eventFlags(),
				Action: run(ui.PageEvents, manage(func(ctx context.Context, c *cli.Context, e *env) error {
					return e.app.Manager().SubmitEvent(ctx, formValues(c, false))
				})),
			},
			{
				Name:      "update",
				ArgsUsage: "<event-id>",
				Flags:     eventFlags(),
				Action: run(ui.PageEvents, manage(func(ctx context.Context, c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					return e.app.Manager().PatchEvent(ctx, id, formValues(c, true))
				})),
			},
			{
				Name:      "delete",
				ArgsUsage: "<event-id>",
				Action: run(ui.PageEvents, adminOnly(func(ctx context.Context, c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					return e.app.Manager().DeleteEvent(ctx, id, e.confirm)
				})),
			},
		},
	}
}

func announcementFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title"},
		&cli.StringFlag{Name: "content"},
		&cli.StringFlag{Name: "priority"},
		&cli.StringFlag{Name: "target-audience"},
		&cli.BoolFlag{Name: "is-pinned"},
	}
}

func announcementCommand() *cli.Command {
	return &cli.Command{
		Name:  "announcements",
		Usage: "manage announcements",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Flags: announcementFlags(),
				Action: run(ui.PageAnnouncements, manage(func(ctx context.Context, c *cli.Context, e *env) error {
					return e.app.Manager().SubmitAnnouncement(ctx, formValues(c, false))
				})),
			},
			{
				Name:      "update",
				ArgsUsage: "<announcement-id>",
				Flags:     announcementFlags(),
				Action: run(ui.PageAnnouncements, manage(func(ctx context.Context, c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					return e.app.Manager().PatchAnnouncement(ctx, id, formValues(c, true))
				})),
			},
			{
				Name:      "delete",
				ArgsUsage: "<announcement-id>",
				Action: run(ui.PageAnnouncements, adminOnly(func(ctx context.Context, c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					return e.app.Manager().DeleteAnnouncement(ctx, id, e.confirm)
				})),
			},
			{
				Name:  "quick",
				Usage: "publish a short announcement",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "content", Required: true},
					&cli.StringFlag{Name: "category", Value: "general"},
				},
				Action: run(ui.PageDashboard, manage(func(ctx context.Context, c *cli.Context, e *env) error {
					return e.app.PublishAnnouncement(ctx, ui.QuickAnnouncementForm{
						Title:    c.String("title"),
						Content:  c.String("content"),
						Category: c.String("category"),
					})
				})),
			},
		},
	}
}

func timetableFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "course-id"},
		&cli.StringFlag{Name: "day-of-week", Usage: "0 (Monday) to 6 (Sunday)"},
		&cli.StringFlag{Name: "start-time"},
		&cli.StringFlag{Name: "end-time"},
		&cli.StringFlag{Name: "room"},
		&cli.StringFlag{Name: "section"},
		&cli.StringFlag{Name: "slot-type"},
	}
}

func timetableCommand() *cli.Command {
	return &cli.Command{
		Name:  "timetable",
		Usage: "manage class slots",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Flags: timetableFlags(),
				Action: run(ui.PageSchedule, manage(func(ctx context.Context, c *cli.Context, e *env) error {
					return e.app.Manager().SubmitTimetableSlot(ctx, formValues(c, false))
				})),
			},
			{
				Name:      "update",
				ArgsUsage: "<slot-id>",
				Flags:     timetableFlags(),
				Action: run(ui.PageSchedule, manage(func(ctx context.Context, c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					return e.app.Manager().PatchTimetableSlot(ctx, id, formValues(c, true))
				})),
			},
			{
				Name:      "retime",
				Usage:     "change only the times, room and type of a slot",
				ArgsUsage: "<slot-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "start-time", Required: true},
					&cli.StringFlag{Name: "end-time", Required: true},
					&cli.StringFlag{Name: "room"},
					&cli.StringFlag{Name: "slot-type", Value: "lecture"},
				},
				Action: run(ui.PageSchedule, manage(func(ctx context.Context, c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					v := formValues(c, false)
					v.Set("slot_type", c.String("slot-type"))
					return e.app.Manager().SaveBulkRow(ctx, id, v)
				})),
			},
			{
				Name:      "delete",
				ArgsUsage: "<slot-id>",
				Action: run(ui.PageSchedule, adminOnly(func(ctx context.Context, c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					return e.app.Manager().DeleteTimetableSlot(ctx, id, e.confirm)
				})),
			},
		},
	}
}
