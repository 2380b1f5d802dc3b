// Package chats persists conversation records. Cross-entity rules (cascade
// deletes, updatedAt bumps) live in the services layer; this package is
// plain keyed access.
package chats
