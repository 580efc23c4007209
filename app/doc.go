/*

Package app boots a switchback application:
it reads configuration from the environment (a .env file is loaded
automatically when present), constructs the logger, keyring, and routing
engine with sensible defaults, and runs an *http.Server with
signal-driven graceful shutdown.

A minimal program:

	a := app.New()
	a.Router().Get("/ping", router.Do(ping))
	if err := a.Run(); err != nil {
		a.Logger().Fatal(err.Error(), nil)
	}

*/
package app
