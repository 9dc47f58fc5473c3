// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"crmdash/internal/delivery/http/response"
	"crmdash/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// callbackPage relays the implicit-grant fragment to the session endpoint.
// The fragment never reaches the server on the redirect itself, so a small
// page reads location.hash, posts it, and scrubs the token from history.
const callbackPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Signing in...</title></head>
<body>
<p>Signing in...</p>
<script>
(function () {
  var fragment = window.location.hash.replace(/^#/, "");
  window.history.replaceState(null, "", window.location.pathname);
  fetch("/api/session", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ fragment: fragment })
  }).then(function () {
    window.location.replace("/");
  }).catch(function () {
    window.location.replace("/");
  });
})();
</script>
</body>
</html>`

// SessionHandler holds dependencies for session lifecycle handlers.
type SessionHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		uc:     uc,
		logger: logger,
	}
}

// Login redirects the browser to the identity provider, or returns the
// authorization URL as JSON when ?redirect=false.
func (h *SessionHandler) Login(c echo.Context) error {
	loginURL, err := h.uc.LoginURL()
	if err != nil {
		return errors.WithStack(err)
	}

	if c.QueryParam("redirect") == "false" {
		return response.Success(c, http.StatusOK, map[string]string{"loginUrl": loginURL}, "Authorization URL generated")
	}

	return c.Redirect(http.StatusTemporaryRedirect, loginURL)
}

// Callback serves the relay page for the provider redirect.
func (h *SessionHandler) Callback(c echo.Context) error {
	return c.HTML(http.StatusOK, callbackPage)
}

type resumeInput struct {
	// An empty fragment is the plain resume transition; a populated one
	// is the relayed OAuth callback. Providers keep redirect fragments
	// well under this bound.
	Fragment string `json:"fragment" validate:"omitempty,max=4096"`
}

// ResumeSession performs the start transition, with or without a callback fragment.
func (h *SessionHandler) ResumeSession(c echo.Context) error {
	var input resumeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid session input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	state, err := h.uc.Resume(c.Request().Context(), input.Fragment)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Session resumed")
}

// GetSession returns the session state as last transitioned.
func (h *SessionHandler) GetSession(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.uc.Current(), "Session state retrieved")
}

// Logout closes the session and clears the stored credential.
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
