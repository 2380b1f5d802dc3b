// Package store implements the schema-versioned persistence substrate.
//
// Records are opaque JSON documents keyed by their "id" field and grouped
// into a fixed set of named stores. Each store may declare secondary index
// fields; their values are copied into indexed columns at write time so
// equality lookups stay cheap, but the JSON record remains the source of
// truth. The engine knows nothing about chat semantics.
//
// The underlying database is SQLite, opened lazily on first use and
// reopened transparently after Close. Schema evolution runs through
// embedded goose migrations: bumping the schema adds stores and indexes
// without touching data in stores that already existed.
package store
