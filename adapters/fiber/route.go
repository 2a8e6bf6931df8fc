// Package fiber wires the auth core into a Fiber v3 application:
// login/logout/session endpoints plus a RequireAuth middleware for
// protecting application routes.
package fiber

import (
	"github.com/gofiber/fiber/v3"
	"github.com/lborres/bantay"
)

type Adapter struct {
	app    *fiber.App
	bantay *bantay.Bantay
}

var _ bantay.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

func (a *Adapter) RegisterRoutes(b *bantay.Bantay) error {
	a.bantay = b

	api := a.app.Group(b.BasePath)

	// Public routes
	api.Post("/login", a.login)
	api.Post("/logout", a.logout)

	// Protected routes
	api.Get("/session", a.session, a.RequireAuth)

	return nil
}
