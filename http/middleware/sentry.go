package middleware

import (
	"net/http"
	"strings"

	sentryhttp "github.com/getsentry/sentry-go/http"
)

// ReportPanic encloses the env and returns an Adapter
// wrapping the handler in sentryhttp.Handle
// in order to recover and report panics.
//
// In a development environment, ReportPanic does nothing.
func ReportPanic(env string) Adapter {
	if strings.EqualFold(env, "development") {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		sh := sentryhttp.New(sentryhttp.Options{
			Repanic:         false,
			WaitForDelivery: true,
		})
		return sh.Handle(handler)
	}
}
