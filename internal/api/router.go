package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/praxislex/billing-console/internal/api/handler"
	"github.com/praxislex/billing-console/internal/api/middleware"
	"github.com/praxislex/billing-console/internal/core/domain"
	"github.com/praxislex/billing-console/internal/core/guard"
	"github.com/praxislex/billing-console/internal/core/session"
	"github.com/praxislex/billing-console/internal/core/state"
	"github.com/praxislex/billing-console/internal/infrastructure/apiclient"
	"github.com/praxislex/billing-console/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered. rdb is nil
// when the file session store is in use; it only feeds the readiness probe.
func NewRouter(cfg *config.Config, sessions *session.Manager, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Service bindings ---
	backend := apiclient.New(cfg.BackendURL, sessions, log)
	associates := state.New("associates", apiclient.NewResource[domain.Profile](backend, "/api/v1/profiles/associates"), log)
	interns := state.New("interns", apiclient.NewResource[domain.Profile](backend, "/api/v1/profiles/interns"), log)
	partners := state.New("partners", apiclient.NewResource[domain.Profile](backend, "/api/v1/profiles/partners"), log)
	clients := state.New("clients", apiclient.NewResource[domain.Client](backend, "/api/v1/clients"), log)
	matters := state.New("matters", apiclient.NewResource[domain.Matter](backend, "/api/v1/matters"), log)
	invoices := state.New("invoices", apiclient.NewResource[domain.Invoice](backend, "/api/v1/invoices"), log)
	registerFlow := state.NewRegisterFlow(apiclient.NewRegistration(backend), log)

	// --- Guards ---
	g := guard.Guard{
		Sessions:      sessions,
		LoginPath:     cfg.Routes.LoginPath,
		LandingPath:   cfg.Routes.LandingPath,
		ForbiddenPath: cfg.Routes.ForbiddenPath,
	}

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(sessions, cfg.MagicLinkRole, cfg.Routes.LoginPath, cfg.Routes.LandingPath, log)
	registerHandler := handler.NewRegisterHandler(registerFlow)

	// --- Auth flows ---
	e.GET("/auth/confirm", sessionHandler.ConfirmMagicLink)
	e.GET("/auth/verify", sessionHandler.VerifyEmail)
	e.GET("/auth/logout", sessionHandler.Logout)
	e.POST("/auth/register", registerHandler.Submit)
	e.POST("/auth/register/reset", registerHandler.Reset)

	// --- Entry points, kept off-limits to signed-in users ---
	entry := e.Group("", middleware.Unauthenticated(g))
	entry.GET(cfg.Routes.LoginPath, entryPoint("login"))
	entry.GET("/register", entryPoint("register"))

	e.GET(cfg.Routes.ForbiddenPath, entryPoint("forbidden"))

	// --- Authenticated console surface ---
	app := e.Group("/app", middleware.Authenticated(g))
	app.GET("/dashboard", dashboard(sessions))
	mountResource(app.Group("/clients"), clients)
	mountResource(app.Group("/matters"), matters)

	// Invoices are restricted to billing roles; profile administration to
	// admins. Authentication is still checked first inside the role guard.
	billing := app.Group("/invoices", middleware.Role(g, domain.RoleAdmin, domain.RolePartner))
	mountResource(billing, invoices)

	staff := app.Group("/profiles", middleware.Role(g, domain.RoleAdmin))
	mountResource(staff.Group("/associates"), associates)
	mountResource(staff.Group("/interns"), interns)
	mountResource(staff.Group("/partners"), partners)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readiness := handler.NewReadinessHandler(cfg.BackendURL, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// mountResource registers the windowed list and CRUD dispatch endpoints for
// one container.
func mountResource[E domain.Entity](grp *echo.Group, container *state.Container[E]) {
	grp.GET("", handler.ListEndpoint(container))
	grp.GET("/:id", handler.GetEndpoint(container))
	grp.POST("", handler.CreateEndpoint(container))
	grp.PUT("/:id", handler.UpdateEndpoint(container))
	grp.DELETE("/:id", handler.DeleteEndpoint(container))
}

// entryPoint is a mount marker for a view rendered outside this module.
func entryPoint(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"view": name})
	}
}

func dashboard(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"view": "dashboard",
			"role": sessions.Role(),
		})
	}
}
