// Package services holds the operations that span more than one record type:
// chat lifecycle with cascading deletes, message ordering, and the cost
// ledger with its aggregates. Repositories stay dumb; the rules live here.
package services
