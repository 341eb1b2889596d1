// Package router defines how HTTP routes are registered for the bulletin.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/campus-events/bulletin/internal/config"
	"github.com/campus-events/bulletin/internal/handler"
	"github.com/campus-events/bulletin/internal/middleware"
)

// RegisterPublic registers the routes on the public allow-list: the event
// listing, the credential routes and the health check.  Static assets and
// uploaded images are mounted here too so pages render without a login.
// The credential POSTs carry the token bucket limiter; everything else on
// this list is unthrottled.
func RegisterPublic(e *echo.Echo, events *handler.EventsHandler, auth *handler.AuthHandler, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	e.GET("/", events.List)
	e.GET("/events", events.List)

	limit := middleware.NewTokenBucket(rlCfg, rdb)
	e.GET("/login", auth.LoginPage)
	e.POST("/login", auth.Login, limit)
	e.GET("/logout", auth.Logout)
	e.GET("/signup", auth.SignupPage)
	e.POST("/signup", auth.Signup, limit)

	e.Static("/static", "web/static")
	e.Static("/uploads/events", "web/public/uploads/events")
}

// RegisterSubmitter registers the submission form and the submitter
// dashboard.  The form routes stay on the public list (the signup flow
// redirects through them and the handlers check the session themselves);
// the dashboard is gated on a submitter session.
func RegisterSubmitter(e *echo.Echo, h *handler.SubmitHandler) {
	e.GET("/submit-event", h.SubmitPage)
	e.POST("/submit-event", h.Submit)

	g := e.Group("/submitter", middleware.RequireSubmitter())
	g.GET("/dashboard", h.Dashboard)
}

// RegisterAdmin registers the admin dashboard, event CRUD and moderation
// actions.  Every route in the group requires an admin session; a
// submitter who lands here is bounced to their own dashboard.
func RegisterAdmin(e *echo.Echo, events *handler.AdminEventsHandler, mod *handler.ModerationHandler) {
	g := e.Group("/admin", middleware.RequireAdmin())
	g.GET("/dashboard", events.Dashboard)
	g.GET("/create", events.CreateForm)
	g.POST("/create", events.Create)
	g.GET("/edit/:id", events.EditForm)
	g.POST("/edit/:id", events.Edit)
	g.POST("/delete/:id", events.Delete)
	g.POST("/submissions/:id/approve", mod.Approve)
	g.POST("/submissions/:id/deny", mod.Deny)
}
