// Package healthcheck mounts the /health endpoint for the AQIMC server.
package healthcheck

import (
	"context"
	"net/http"

	"github.com/alexliesenfeld/health"
)

// HandleHealthCheckRequest registers the /health handler on mux. The check
// function decides liveness; the server wires it to the cipher self test.
func HandleHealthCheckRequest(mux *http.ServeMux, checkFunc func(context.Context) error) {
	healthChecker := health.NewChecker(
		health.WithCheck(health.Check{
			Name:  "cipher-roundtrip",
			Check: checkFunc,
		}),
	)

	mux.Handle("/health", health.NewHandler(healthChecker))
}
