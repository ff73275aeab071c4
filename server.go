package main

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bonhomie95/portfolio/internal/content"
	"github.com/bonhomie95/portfolio/internal/mailer"
	"github.com/bonhomie95/portfolio/internal/render"
	"github.com/bonhomie95/portfolio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type server struct {
	cfg       Config
	portfolio content.Portfolio
	view      pageView
	store     *store.Store
	sender    mailer.Sender
	now       func() time.Time

	adminToken string
	salt       string
	adminUser  string
	adminPass  string

	// tracking counts in-flight visit writes.
	tracking sync.WaitGroup
}

type projectView struct {
	content.Project
	DescriptionHTML template.HTML
}

// pageView is the template data for the page and its section fragments.
type pageView struct {
	content.Portfolio
	BlurbHTML    template.HTML
	ProjectViews []projectView
	Active       string
	Year         int
}

func newServer(cfg Config, p content.Portfolio, st *store.Store, sender mailer.Sender) (*server, error) {
	blurb, err := render.Inline(p.Profile.Blurb)
	if err != nil {
		return nil, err
	}
	projects := make([]projectView, 0, len(p.Projects))
	for _, pr := range p.Projects {
		desc, err := render.Inline(pr.Description)
		if err != nil {
			return nil, err
		}
		projects = append(projects, projectView{Project: pr, DescriptionHTML: desc})
	}

	s := &server{
		cfg:       cfg,
		portfolio: p,
		store:     st,
		sender:    sender,
		now:       time.Now,
		view: pageView{
			Portfolio:    p,
			BlurbHTML:    blurb,
			ProjectViews: projects,
		},
	}
	if err := s.initAdmin(); err != nil {
		return nil, err
	}
	return s, nil
}

// defaultSection is what the nav highlights before the browser reports any
// section entering the focus band.
func (s *server) defaultSection() string {
	if len(s.portfolio.Sections) == 0 {
		return ""
	}
	return s.portfolio.Sections[0].ID
}

func (s *server) pageData() pageView {
	v := s.view
	v.Active = s.defaultSection()
	v.Year = s.now().Year()
	return v
}

func (s *server) routes() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.visitorTracking())

	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", s.pageData())
	})

	// HTMX section fragments
	r.GET("/sections/:id", func(c *gin.Context) {
		id := c.Param("id")
		if _, ok := s.portfolio.Section(id); !ok {
			c.HTML(http.StatusNotFound, "section-missing", gin.H{"id": id})
			return
		}
		c.HTML(http.StatusOK, "section-"+id, s.pageData())
	})

	r.GET("/api/profile", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.portfolio)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/contact", s.handleContact)

	s.setupAdminRoutes(r)
	return r, nil
}
