// Package usage persists a request log in SQLite: which searches ran, what
// they matched and how long they took. The log feeds the /usage endpoint
// and helps tune the fuzzy threshold against real query traffic.
package usage
