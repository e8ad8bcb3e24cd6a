// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and a console encoding suitable for a CLI tool.
//
// # Run Correlation
//
// Every sync or validation pass is assigned a run ID. The WithRunID helper
// attaches that ID to the logger so all lines belonging to one pass can be
// correlated after the fact.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Incremental sync started")
package logger
