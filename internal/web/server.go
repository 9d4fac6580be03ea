// Package web serves the portal to browsers. Each request restores the
// session from its cookie, runs one controller action and renders the
// resulting surface as HTML.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"campusintelli/internal/api"
	"campusintelli/internal/auth"
	"campusintelli/internal/changefeed"
	"campusintelli/internal/httpmiddleware"
	"campusintelli/internal/portal"
	"campusintelli/internal/session"
	"campusintelli/internal/store"
	"campusintelli/internal/ui"
)

// KVFactory opens the durable session storage for one request.
type KVFactory func(c *gin.Context) (store.KV, error)

// CookieKV keeps the session entry in the signed browser cookie.
func CookieKV(cs sessions.Store) KVFactory {
	return func(c *gin.Context) (store.KV, error) {
		return store.NewCookie(cs, c.Request, c.Writer), nil
	}
}

// RedisKV keeps the session entry in Redis under an id held in the cookie.
func RedisKV(cs sessions.Store, r *store.Redis, ttl time.Duration) KVFactory {
	return func(c *gin.Context) (store.KV, error) {
		sid, err := store.NewCookie(cs, c.Request, c.Writer).SessionID(uuid.NewString)
		if err != nil {
			return nil, err
		}
		return r.KV("", sid, ttl), nil
	}
}

// HealthFunc reports the state of each dependency.
type HealthFunc func(ctx context.Context) map[string]bool

// Options configures the portal server.
type Options struct {
	API          *api.Client
	Sessions     KVFactory
	CSRFKey      []byte
	SecureCookie bool
	Logger       zerolog.Logger
	RateLimit    int
	Health       HealthFunc
	Metrics      http.Handler
}

// Server is the browser-facing portal.
type Server struct {
	api      *api.Client
	sessions KVFactory
	views    *renderer
	engine   *gin.Engine
}

const appKey = "app"

// New builds the router.
func New(opts Options) (*Server, error) {
	views, err := newRenderer()
	if err != nil {
		return nil, err
	}
	s := &Server{api: opts.API, sessions: opts.Sessions, views: views}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(opts.Logger, "/healthz", "/metrics"))
	r.Use(httpmiddleware.SecurityHeaders())

	r.GET("/healthz", health(opts.Health))
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}
	r.StaticFS("/static", http.FS(staticFS()))

	protect := csrf.Protect(opts.CSRFKey,
		csrf.Secure(opts.SecureCookie),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Your form expired, reload the page and try again.", http.StatusForbidden)
		})),
	)

	app := r.Group("/", csrfMiddleware(protect), s.bind)
	limiter := httpmiddleware.NewTokenBucket(opts.RateLimit, opts.RateLimit)

	app.GET("/", s.home)
	app.POST("/login", limiter.Middleware(), s.login)
	app.POST("/register", limiter.Middleware(), s.register)
	app.POST("/logout", s.logout)

	signed := app.Group("/", auth.RequireSession("/"))
	signed.GET("/pages/:page", s.page)
	signed.POST("/profile", s.updateProfile)

	signed.GET("/attendance/qr", s.showQRGenerator)
	signed.POST("/attendance/qr", s.generateQR)
	signed.GET("/attendance/scan", s.showQRScanner)
	signed.POST("/attendance/mark", s.markAttendance)

	signed.GET("/bookings/new", s.showBookingForm)
	signed.POST("/bookings/availability", s.checkAvailability)
	signed.POST("/bookings", s.bookRoom)
	signed.POST("/bookings/:id/cancel", s.cancelBooking)

	signed.GET("/materials/:id/download", s.downloadMaterial)
	signed.GET("/submissions/:id/download", s.downloadSubmission)

	manage := signed.Group("/manage", auth.RequireManage(permissions))
	adminOnly := auth.RequireAdmin(permissions)

	manage.GET("/announcements/quick", s.showQuickAnnouncement)
	manage.POST("/announcements/quick", s.publishAnnouncement)

	manage.GET("/events/new", s.newEvent)
	manage.GET("/events/:id/edit", s.editEvent)
	manage.POST("/events/save", s.saveEvent)
	manage.POST("/events/:id/delete", adminOnly, s.deleteEvent)

	manage.GET("/announcements/new", s.newAnnouncement)
	manage.GET("/announcements/:id/edit", s.editAnnouncement)
	manage.POST("/announcements/save", s.saveAnnouncement)
	manage.POST("/announcements/:id/delete", adminOnly, s.deleteAnnouncement)

	manage.GET("/timetable/new", s.newSlot)
	manage.GET("/timetable/:id/edit", s.editSlot)
	manage.POST("/timetable/save", s.saveSlot)
	manage.POST("/timetable/:id/delete", adminOnly, s.deleteSlot)
	manage.GET("/timetable/bulk", s.bulkSlots)
	manage.POST("/timetable/bulk/:id/save", s.saveBulkRow)
	manage.POST("/timetable/bulk/:id/delete", adminOnly, s.deleteBulkRow)

	s.engine = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// bind builds the per-request session, surface and controller.
func (s *Server) bind(c *gin.Context) {
	ctx := c.Request.Context()
	kv, err := s.sessions(c)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("open session storage")
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	sess := session.New(kv)
	app := portal.New(s.api, sess, ui.NewSurface(), changefeed.New())
	if _, err := app.Resume(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("restore session")
	}
	c.Set(appKey, app)
	c.Set(auth.PrincipalKey, sess)
	c.Next()
}

func appFrom(c *gin.Context) *portal.App {
	return c.MustGet(appKey).(*portal.App)
}

func appSession(c *gin.Context) *session.Context {
	return c.MustGet(auth.PrincipalKey).(*session.Context)
}

func permissions(c *gin.Context) auth.Permissions {
	return appFrom(c).Manager().Permissions()
}

// csrfMiddleware runs gorilla/csrf inside the gin chain.
func csrfMiddleware(protect func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false
		protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

func health(check HealthFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps := map[string]bool{}
		if check != nil {
			deps = check(c.Request.Context())
		}
		status := http.StatusOK
		body := gin.H{"status": "ok"}
		for name, ok := range deps {
			body[name] = ok
			if !ok {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
			}
		}
		c.JSON(status, body)
	}
}
