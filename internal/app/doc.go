// Package app assembles the application: configuration, logging, the
// dataset load, services, the middleware chain and the HTTP server, plus
// the graceful shutdown lifecycle.
package app
