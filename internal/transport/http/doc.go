// Package http contains the HTTP handlers for the dashboard, insights and
// health endpoints. Handlers depend on narrow service interfaces and
// delegate error responses to the central RFC 7807 error handler.
package http
