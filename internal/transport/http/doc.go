// Package http exposes missing plot estimation over HTTP.
//
// Routes:
//
//	POST /v1/estimate       estimation result and completed table as JSON
//	POST /v1/estimate/spss  SPSS syntax writing the estimates back
//	GET  /healthz           liveness
//	GET  /metrics           Prometheus metrics
//
// Errors are RFC 7807 problem details. Estimation failures answer 422 with
// a type naming the failure, e.g. /errors/estimation/degenerate-design.
package http
