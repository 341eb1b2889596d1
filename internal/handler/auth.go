package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campus-events/bulletin/internal/config"
	"github.com/campus-events/bulletin/internal/repository"
	"github.com/campus-events/bulletin/internal/session"
	"github.com/campus-events/bulletin/internal/utils"
)

// AuthHandler bundles dependencies for the credential routes.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions *session.Manager
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions}
}

// LoginPage renders the login/signup view with the login form active.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return renderLogin(c, "", "", "login")
}

// Login authenticates a user and establishes their session. Admins land on
// the admin dashboard, submitters on theirs. Every failure mode shows the
// same generic message so the form does not leak which part was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return renderLogin(c, "Please enter both email and password.", "", "login")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			c.Logger().Errorf("login lookup: %v", err)
		}
		return renderLogin(c, "Invalid login", "", "login")
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return renderLogin(c, "Invalid login", "", "login")
	}

	var ident session.Identity
	var target string
	switch u.Role {
	case repository.RoleAdmin:
		ident = session.Identity{Role: session.RoleAdmin, UserID: u.ID, Email: u.Email}
		target = "/admin/dashboard"
	case repository.RoleSubmitter:
		ident = session.Identity{Role: session.RoleSubmitter, UserID: u.ID, Email: u.Email}
		target = "/submitter/dashboard"
	default:
		return renderLogin(c, "Invalid login", "", "login")
	}

	cookie, err := h.Sessions.Issue(ctx, ident)
	if err != nil {
		c.Logger().Errorf("issue session: %v", err)
		return renderLogin(c, "Unable to log in right now. Please try again.", "", "login")
	}
	c.SetCookie(cookie)
	return c.Redirect(http.StatusSeeOther, target)
}

// Logout destroys the session and clears the cookie. An optional ?next=
// parameter names the page to return to; only same-site paths are honored.
func (h *AuthHandler) Logout(c echo.Context) error {
	target := "/"
	if next := c.QueryParam("next"); strings.HasPrefix(next, "/") {
		target = next
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	value := ""
	if cookie, err := c.Cookie(session.CookieName); err == nil {
		value = cookie.Value
	}
	c.SetCookie(h.Sessions.Drop(ctx, value))
	return c.Redirect(http.StatusSeeOther, target)
}

// SignupPage renders the login/signup view with the signup form active.
func (h *AuthHandler) SignupPage(c echo.Context) error {
	return renderLogin(c, "", "", "signup")
}

// Signup registers a new submitter account, logs it in and sends it
// straight to the submission form.
func (h *AuthHandler) Signup(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")
	confirm := c.FormValue("confirmPassword")

	if email == "" || password == "" || confirm == "" {
		return renderLogin(c, "", "All fields are required.", "signup")
	}
	if password != confirm {
		return renderLogin(c, "", "Passwords do not match.", "signup")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Users.Create(ctx, email, password, repository.RoleSubmitter, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return renderLogin(c, "", "That email is already registered.", "signup")
		}
		c.Logger().Errorf("signup: %v", err)
		return renderLogin(c, "", "Unable to create account.", "signup")
	}

	cookie, err := h.Sessions.Issue(ctx, session.Identity{
		Role:   session.RoleSubmitter,
		UserID: id,
		Email:  email,
	})
	if err != nil {
		c.Logger().Errorf("issue session: %v", err)
		return renderLogin(c, "Account created. Please log in.", "", "login")
	}
	c.SetCookie(cookie)
	return c.Redirect(http.StatusSeeOther, "/submit-event")
}
