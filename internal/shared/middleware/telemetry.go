package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Telemetry instruments the handler with otelhttp: one server span per
// request plus the standard request duration/size metrics.
func Telemetry(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "tally-api",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
