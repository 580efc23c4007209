package app

import (
	"net/http"

	"github.com/switchback-web/switchback"
	"github.com/switchback-web/switchback/http/keyring"
	"github.com/switchback-web/switchback/http/router"
	"github.com/switchback-web/switchback/logger"
)

// An AppOptFn is a functional option configuring an App when constructing a new one.
type AppOptFn func(*App)

// WithEnv overrides the ENVIRONMENT env var.
func WithEnv(env switchback.Environment) AppOptFn {
	return func(a *App) {
		a.env = env
	}
}

// WithKeyring replaces the default keyring,
// which holds only a request id key.
func WithKeyring(kr keyring.Keyringable) AppOptFn {
	return func(a *App) {
		a.kr = kr
	}
}

// WithLogger replaces the default console logger.
func WithLogger(l logger.Logger) AppOptFn {
	return func(a *App) {
		a.l = l
	}
}

// WithRouter replaces the default routing engine entirely,
// including its default middleware.
func WithRouter(r *router.Router) AppOptFn {
	return func(a *App) {
		a.r = r
	}
}

// WithServer replaces the default *http.Server;
// its Handler is overwritten by Run.
func WithServer(srv *http.Server) AppOptFn {
	return func(a *App) {
		a.srv = srv
	}
}
