package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"

	"campusintelli/internal/portal"
	"campusintelli/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFiles embed.FS

func staticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

type navItem struct {
	Page   ui.Page
	Title  string
	Class  string
	Active bool
}

// frame is the data of one rendered response.
type frame struct {
	Screen ui.Screen
	Page   ui.Page
	Nav    []navItem
	Chrome ui.Chrome
	CSRF   template.HTML
	Modals []ui.Modal
	Toasts []ui.Toast

	surface *ui.Surface
}

// View returns what was written to a container, or nil.
func (f *frame) View(container string) ui.View {
	v, _ := f.surface.View(container)
	return v
}

func newFrame(r *http.Request, s *ui.Surface) *frame {
	f := &frame{
		Screen:  s.Screen(),
		Page:    s.Page(),
		Chrome:  s.Chrome(),
		CSRF:    csrf.TemplateField(r),
		Modals:  s.ActiveModals(),
		Toasts:  s.DrainToasts(),
		surface: s,
	}
	for _, p := range ui.Pages {
		f.Nav = append(f.Nav, navItem{Page: p, Title: p.Title(), Class: p.Class(), Active: p == f.Page})
	}
	return f
}

// item pairs a view with the frame it is rendered in.
type item struct {
	Root *frame
	V    any
}

type renderer struct {
	t *template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{}
	funcs := template.FuncMap{
		"render":   r.render,
		"item":     func(root *frame, v any) item { return item{Root: root, V: v} },
		"imageURL": imageURL,
	}
	t, err := template.New("portal").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	r.t = t
	return r, nil
}

// imageURL passes through image data URLs and http(s) links only.
func imageURL(s string) template.URL {
	switch {
	case strings.HasPrefix(s, "data:image/"), strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "http://"):
		return template.URL(s)
	}
	return ""
}

// render picks the template named after the view's type.
func (r *renderer) render(root *frame, v ui.View) (template.HTML, error) {
	if v == nil {
		return "", nil
	}
	name := "view/" + reflect.TypeOf(v).Name()
	if r.t.Lookup(name) == nil {
		return "", fmt.Errorf("web: no template for %T", v)
	}
	return r.include(name, item{Root: root, V: v})
}

func (r *renderer) include(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (s *Server) render(c *gin.Context, app *portal.App) {
	out, err := s.views.include("layout", newFrame(c.Request, app.Surface()))
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("render")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}
