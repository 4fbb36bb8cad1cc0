package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/praxislex/billing-console/internal/api/metrics"
	"github.com/praxislex/billing-console/internal/core/session"
)

// SessionHandler owns the query-string login flows (magic link and email
// verification) and logout.
type SessionHandler struct {
	sessions    *session.Manager
	defaultRole string
	loginPath   string
	landingPath string
	log         zerolog.Logger
}

func NewSessionHandler(sessions *session.Manager, defaultRole, loginPath, landingPath string, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:    sessions,
		defaultRole: defaultRole,
		loginPath:   loginPath,
		landingPath: landingPath,
		log:         log,
	}
}

// ConfirmMagicLink completes a magic-link sign-in.
//
// @Summary      Confirm a magic-link token
// @Tags         auth
// @Param        token  query  string  false  "Magic-link token"
// @Success      302
// @Router       /auth/confirm [get]
func (h *SessionHandler) ConfirmMagicLink(c echo.Context) error {
	return h.loginFromQueryToken(c, "magic_link")
}

// VerifyEmail completes an email-verification sign-in.
//
// @Summary      Verify an email token
// @Tags         auth
// @Param        token  query  string  false  "Verification token"
// @Success      302
// @Router       /auth/verify [get]
func (h *SessionHandler) VerifyEmail(c echo.Context) error {
	return h.loginFromQueryToken(c, "verify_email")
}

// loginFromQueryToken extracts the token parameter and, when present, logs
// in with the configured default role and lands the user on the dashboard.
// The role is deliberately not derived from the token; the backend minted it
// and remains the authority on what it grants.
func (h *SessionHandler) loginFromQueryToken(c echo.Context, event string) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.Redirect(http.StatusFound, h.loginPath)
	}

	if err := h.sessions.Login(c.Request().Context(), token, h.defaultRole); err != nil {
		return err
	}

	metrics.SessionEventsTotal.WithLabelValues(event).Inc()
	h.log.Info().
		Str("flow", event).
		Str("subject", peekSubject(token)).
		Str("role", h.defaultRole).
		Msg("token sign-in completed")

	return c.Redirect(http.StatusFound, h.landingPath)
}

// Logout tears down the session and sends the user to the login entry point.
//
// @Summary      Log out
// @Tags         auth
// @Success      302
// @Router       /auth/logout [get]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		return err
	}
	metrics.SessionEventsTotal.WithLabelValues("logout").Inc()
	return c.Redirect(http.StatusFound, h.loginPath)
}

// peekSubject reads the sub claim for logging. No signature check happens
// here: the token is opaque to the console and the backend validates it on
// every API call.
func peekSubject(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
