// Package sqlite implements the store interfaces on an embedded SQLite
// database. It owns the connection lifecycle, the goose schema migrations,
// and the mapping from driver errors to the store error vocabulary.
package sqlite
