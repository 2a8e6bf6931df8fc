package fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/lborres/bantay"
)

// localSession is the Locals key under which RequireAuth stores the
// session handle for downstream handlers.
const localSession = "bantay_session"

// SessionFromCtx returns the session RequireAuth stored on the request,
// or nil when the route is not protected.
func SessionFromCtx(c fiber.Ctx) *bantay.Session {
	sess, ok := c.Locals(localSession).(*bantay.Session)
	if !ok {
		return nil
	}
	return sess
}

// RequireAuth guards a route. A live authenticated session passes
// through; otherwise a valid remember token silently re-establishes
// one. Everything else is a 401.
func (a *Adapter) RequireAuth(c fiber.Ctx) error {
	ctx := c.Context()

	var sess *bantay.Session
	presented := c.Cookies(a.bantay.Sessions.CookieName())
	if presented != "" {
		started, err := a.bantay.Sessions.Start(ctx, presented)
		if err != nil {
			return handleAuthError(c, err)
		}
		sess = started

		if sess.IsAuthenticated() {
			if sess.Token() != presented {
				// the fixation guard rotated the identifier
				setCookie(c, a.bantay.Sessions.Cookie(sess))
			}
			c.Locals(localSession, sess)
			return c.Next()
		}
	}

	rememberToken := c.Cookies(a.bantay.RememberTokens.CookieName())
	view, err := a.bantay.RememberTokens.Validate(ctx, rememberToken)
	if err != nil {
		if sess != nil && sess.Token() != presented {
			// the identifier was never delivered to the client; the
			// record would sit orphaned until expiry cleanup
			_ = a.bantay.Sessions.Destroy(ctx, sess)
		}
		if rememberToken != "" {
			// dead token, make the browser drop it
			setCookie(c, a.bantay.RememberTokens.ExpiredCookie())
		}
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	sess, err = a.bantay.Sessions.Establish(ctx, sess, view)
	if err != nil {
		return handleAuthError(c, err)
	}
	setCookie(c, a.bantay.Sessions.Cookie(sess))

	c.Locals(localSession, sess)
	return c.Next()
}
