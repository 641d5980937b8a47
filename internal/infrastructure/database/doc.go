// Package database provides the SQLite persistence layer.
//
// It wraps database/sql with lifecycle management, health checks and
// embedded schema migrations. The store holds durable reminder history:
// which events fired on which day, so dedup survives restarts.
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Performance Characteristics:
//   - WAL mode allows concurrent reads during writes
//   - Busy timeout prevents lock contention errors
//   - The pool is capped at one connection to match SQLite's single-writer model
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Migrations are additive-only; each file has both .up.sql and .down.sql.
package database
