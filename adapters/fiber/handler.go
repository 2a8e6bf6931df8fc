package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/lborres/bantay"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Remember bool   `json:"remember"`
}

// login verifies credentials, establishes the session, and optionally
// issues a remember token. Credentials are checked before any session
// state is touched, so failed logins never mint session records.
func (a *Adapter) login(c fiber.Ctx) error {
	var input loginInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	role, err := bantay.ParseRole(input.Role)
	if err != nil {
		return handleAuthError(c, err)
	}

	ctx := c.Context()

	view, err := a.bantay.Verifier.Authenticate(ctx, input.Email, input.Password, role)
	if err != nil {
		return handleAuthError(c, err)
	}

	sess, err := a.bantay.Sessions.Start(ctx, c.Cookies(a.bantay.Sessions.CookieName()))
	if err != nil {
		return handleAuthError(c, err)
	}
	sess, err = a.bantay.Sessions.Establish(ctx, sess, view)
	if err != nil {
		return handleAuthError(c, err)
	}
	setCookie(c, a.bantay.Sessions.Cookie(sess))

	if input.Remember {
		// A failure here degrades to a session-only login; it never
		// fails the request.
		if token, err := a.bantay.RememberTokens.Issue(ctx, view.ID); err == nil {
			setCookie(c, a.bantay.RememberTokens.Cookie(token))
		}
	}

	return c.Status(http.StatusOK).JSON(bantay.SessionData{
		User:      view,
		ExpiresAt: sess.ExpiresAt(),
	})
}

// logout destroys the server-side session, revokes the presented
// remember token, and expires both cookies. Safe to call without a
// live session.
func (a *Adapter) logout(c fiber.Ctx) error {
	ctx := c.Context()

	if token := c.Cookies(a.bantay.Sessions.CookieName()); token != "" {
		if sess, err := a.bantay.Sessions.Start(ctx, token); err == nil {
			_ = a.bantay.Sessions.Destroy(ctx, sess)
		}
	}
	// Revoking an absent token is already a no-op.
	_ = a.bantay.RememberTokens.Revoke(ctx, c.Cookies(a.bantay.RememberTokens.CookieName()))

	setCookie(c, a.bantay.Sessions.ExpiredCookie())
	setCookie(c, a.bantay.RememberTokens.ExpiredCookie())

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "signed out successfully",
	})
}

// session reports the authenticated identity behind the current
// session. RequireAuth runs first, so the handle is always present.
func (a *Adapter) session(c fiber.Ctx) error {
	sess, ok := c.Locals(localSession).(*bantay.Session)
	if !ok || !sess.IsAuthenticated() {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	return c.Status(http.StatusOK).JSON(bantay.SessionData{
		User:      sess.User(),
		ExpiresAt: sess.ExpiresAt(),
	})
}

// setCookie translates the framework-agnostic cookie into a Fiber one.
func setCookie(c fiber.Ctx, ck *bantay.Cookie) {
	c.Cookie(&fiber.Cookie{
		Name:     ck.Name,
		Value:    ck.Value,
		Path:     ck.Path,
		Domain:   ck.Domain,
		MaxAge:   ck.MaxAge,
		Expires:  ck.Expires,
		Secure:   ck.Secure,
		HTTPOnly: ck.HTTPOnly,
		SameSite: ck.SameSite,
	})
}

// handleAuthError maps authentication errors to appropriate HTTP responses
func handleAuthError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// mapErrorToStatus maps bantay error types to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, bantay.ErrInvalidCredentials),
		errors.Is(err, bantay.ErrInvalidToken):
		return http.StatusUnauthorized

	case errors.Is(err, bantay.ErrAccountInactive):
		return http.StatusForbidden

	case errors.Is(err, bantay.ErrEmailRequired),
		errors.Is(err, bantay.ErrPasswordRequired),
		errors.Is(err, bantay.ErrUnknownRole):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
