package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout caps every database round trip made from a handler. The driver
// has no statement timeout configured, so the context carries one.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// renderLogin renders the combined login/signup view. The login wall always
// answers 200 with an explanatory message rather than redirecting.
func renderLogin(c echo.Context, loginErr, signupErr, activeForm string) error {
	if activeForm == "" {
		activeForm = "login"
	}
	return c.Render(http.StatusOK, "login", map[string]any{
		"ErrorMessage":       loginErr,
		"SignupErrorMessage": signupErr,
		"ActiveForm":         activeForm,
	})
}
