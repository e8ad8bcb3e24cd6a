// Package database handles connections to the two stores the synchronizer
// talks to: the operational source and the analytical warehouse.
//
// It provides a wrapper around GORM that configures MySQL connections
// (DSN encoding, timeouts, pool limits) from the application's configuration.
// A sqlite driver branch exists so tests can run against an in-memory store
// through the exact same GORM surface.
//
// # Connect
//
// Connect establishes and pings a connection. The synchronizer treats a ping
// failure as fatal: a run must not start against an unreachable store.
//
// # Usage
//
//	src, err := database.Connect(cfg.Source)
//	if err != nil {
//	    return fmt.Errorf("source store unreachable: %w", err)
//	}
package database
