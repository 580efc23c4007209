package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/switchback-web/switchback"
	"github.com/switchback-web/switchback/http/keyring"
	"github.com/switchback-web/switchback/http/middleware"
	"github.com/switchback-web/switchback/http/resp"
	"github.com/switchback-web/switchback/http/router"
	"github.com/switchback-web/switchback/logger"
)

const (
	environmentEnvVar = "ENVIRONMENT"

	DefaultPort = ":3000"
	portEnvVar  = "PORT"

	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	shutdownTimeout = 5 * time.Second
)

// An App manages and exposes the components of a switchback application to one another.
type App struct {
	env switchback.Environment
	kr  keyring.Keyringable
	l   logger.Logger
	r   *router.Router
	srv *http.Server
}

// New constructs an App from environment variables and the provided options.
// Options overwrite the environment-derived defaults.
func New(opts ...AppOptFn) *App {
	a := &App{env: switchback.EnvVarOrEnv(environmentEnvVar, switchback.Development)}
	for _, opt := range opts {
		opt(a)
	}

	if a.l == nil {
		a.l = logger.New(logger.WithEnv(a.env.String()))
	}

	if a.kr == nil {
		a.kr = keyring.NewKeyring(keyring.Key(switchback.RequestIDKey))
	}

	if a.r == nil {
		d := resp.NewResponder(resp.WithLogger(a.l))
		a.r = router.New(a.env,
			router.WithLogger(a.l),
			router.WithResponder(d),
			router.WithMiddleware(
				middleware.RequestID(a.kr.RequestIDKey()),
				middleware.InjectIPAddress(),
				middleware.LogRequest(a.l),
				middleware.InjectResponder(d, keyring.Key(switchback.ResponderKey)),
			),
		)
	}

	if a.srv == nil {
		a.srv = defaultServer()
	}

	return a
}

func (a *App) Env() switchback.Environment { return a.env }
func (a *App) Keyring() keyring.Keyringable {
	return a.kr
}
func (a *App) Logger() logger.Logger { return a.l }

// Router exposes the routing engine for declaring routes before Run.
func (a *App) Router() *router.Router { return a.r }

// Run finalizes the routing engine and serves it until a shutdown signal arrives:
//
//   - os.Interrupt
//   - syscall.SIGHUP
//   - syscall.SIGINT
//   - syscall.SIGQUIT
//   - syscall.SIGTERM
//
// Any terminal error handlers passed in run after the engine's own error handling declines.
func (a *App) Run(terminal ...router.ErrorHandler) error {
	a.srv.Handler = a.r.Finish(terminal...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)

	go func() {
		s := <-ch
		a.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
		cancel()
	}()

	go func() {
		a.l.Info(fmt.Sprintf("running web server at %s", a.srv.Addr), nil)
		if err := a.srv.ListenAndServe(); err != http.ErrServerClosed {
			a.l.Error(fmt.Errorf("could not listen: %w", err).Error(), nil)
		}

		// unblocks Run when the server stops for any reason,
		// including an external Shutdown
		cancel()
	}()

	<-ctx.Done()
	return a.Shutdown()
}

// Shutdown drains in-flight requests and stops the web server.
func (a *App) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.l.Info("shutting down web server", nil)
	if err := a.srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	a.l.Info("web server shutdown successfully", nil)
	return nil
}

func defaultServer() *http.Server {
	port := switchback.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	return &http.Server{
		Addr:         port,
		IdleTimeout:  switchback.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  switchback.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: switchback.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}
