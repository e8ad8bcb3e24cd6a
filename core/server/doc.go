// Package server holds configuration for the optional status HTTP server
// exposed by the serve command.
package server
