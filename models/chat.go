// Package models defines the record types persisted by the local store.
// JSON field names match the on-disk layout; all timestamps are Unix
// milliseconds in UTC.
package models

// Visibility controls whether a chat may be shared outside the device.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Chat is a single conversation.
type Chat struct {
	// ID is a globally unique identifier for the chat.
	ID string `json:"id"`

	// Title is the user-visible conversation title.
	Title string `json:"title"`

	// CreatedAt is the creation time; UpdatedAt is bumped on every message
	// append. Both are monotonically non-decreasing.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`

	// Model identifies the generation backend used for this chat.
	Model string `json:"model"`

	Visibility Visibility `json:"visibility"`

	// TotalCost is a denormalized, best-effort figure. The cost ledger is
	// authoritative; this field is informational only and is not kept in
	// sync with it.
	TotalCost float64 `json:"totalCost"`
}
