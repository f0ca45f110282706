// Package database provides SQLite connectivity for Stockhold.
//
// It manages:
//   - Database connection with WAL mode for concurrent reads
//   - Embedded schema migrations applied at startup
//   - Connection lifecycle and health checks
//
// All queries in the repositories built on this package use parameterised
// statements, and the database file is restricted to owner read/write.
// Foreign keys are enabled on every connection; tenant isolation itself is
// enforced by query predicates in the repositories, not by the schema.
package database
