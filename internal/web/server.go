package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veles-works/ems-console/internal/config"
	"github.com/veles-works/ems-console/internal/editor"
	"github.com/veles-works/ems-console/internal/emsapi"
	"github.com/veles-works/ems-console/internal/metrics"
	"github.com/veles-works/ems-console/internal/session"
)

// maxUploadMemory bounds the in-memory part of a multipart form parse.
const maxUploadMemory = 8 << 20

// Deps carries the collaborators the console server is built with.
type Deps struct {
	Log        *slog.Logger
	Metrics    *metrics.Metrics
	API        *emsapi.Client
	Sessions   session.Store
	Editors    *editor.Manager
	Pinger     StorePinger
	Cookie     config.CookieConfig
	SessionTTL time.Duration
	EMSBaseURL string
	Gatherer   prometheus.Gatherer
}

// Server renders the console pages. It owns no employee data; every
// page is built from a fresh round trip to the EMS API.
type Server struct {
	engine   *gin.Engine
	api      *emsapi.Client
	sessions session.Store
	editors  *editor.Manager
	cookie   config.CookieConfig
	ttl      time.Duration
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// New assembles the router, templates and handlers.
func New(deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(mustParseTemplates())
	engine.MaxMultipartMemory = maxUploadMemory

	srv := &Server{
		engine:   engine,
		api:      deps.API,
		sessions: deps.Sessions,
		editors:  deps.Editors,
		cookie:   deps.Cookie,
		ttl:      deps.SessionTTL,
		log:      deps.Log,
		metrics:  deps.Metrics,
	}

	engine.GET("/login", srv.handleLoginPage)
	engine.POST("/login", srv.handleLogin)
	engine.GET("/healthz", gin.WrapH(NewHealthChecker(deps.Pinger, deps.EMSBaseURL, deps.Log)))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	authed := engine.Group("/", srv.requireSession())
	authed.GET("", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/employees") })
	authed.GET("/employees", srv.handleEmployeeList)
	authed.POST("/employees", srv.handleEmployeeCreate)
	authed.GET("/employees/:id", srv.handleEmployeeDetail)
	authed.POST("/employees/:id", srv.handleEmployeeUpdate)
	authed.POST("/employees/:id/delete", srv.handleEmployeeDelete)
	authed.POST("/logout", srv.handleLogout)

	engine.NoRoute(srv.handleNotFound)

	return srv
}

// Handler exposes the router for an http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}
