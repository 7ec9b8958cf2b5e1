// Package database manages the embedded SQLite store backing the usage
// log, including schema migrations applied at startup.
package database
