// Package store defines the persistence interfaces for the vocabulary core
// along with the shared error vocabulary and transaction helpers. Concrete
// implementations live in internal/platform/sqlite.
package store
