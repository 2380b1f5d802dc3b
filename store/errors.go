package store

import "errors"

var (
	// ErrUnknownStore is returned for store names outside the fixed set.
	ErrUnknownStore = errors.New("unknown store")

	// ErrUnknownIndex is returned for index lookups on undeclared fields.
	ErrUnknownIndex = errors.New("unknown index")

	// ErrMissingID is returned when a record's JSON has no "id" string.
	ErrMissingID = errors.New("record has no id")
)
